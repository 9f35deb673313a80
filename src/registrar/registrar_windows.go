//go:build windows

package registrar

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// registerScheme writes the per-user protocol handler keys. CreateKey opens
// existing keys, so repeated registration is a no-op.
func registerScheme(scheme, exe string) error {
	root, _, err := registry.CreateKey(registry.CURRENT_USER, `Software\Classes\`+scheme, registry.ALL_ACCESS)
	if err != nil {
		return err
	}
	defer root.Close()
	if err := root.SetStringValue("", "URL:"+scheme+" Protocol"); err != nil {
		return err
	}
	if err := root.SetStringValue("URL Protocol", ""); err != nil {
		return err
	}

	cmdKey, _, err := registry.CreateKey(registry.CURRENT_USER, `Software\Classes\`+scheme+`\shell\open\command`, registry.ALL_ACCESS)
	if err != nil {
		return err
	}
	defer cmdKey.Close()
	return cmdKey.SetStringValue("", fmt.Sprintf(`"%s" "%%1"`, exe))
}
