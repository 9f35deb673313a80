//go:build !windows && !darwin

package registrar

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const desktopFileName = "uri-dispatch-stub.desktop"

// registerScheme installs a .desktop entry and points the x-scheme-handler
// MIME type at it. The file is only rewritten when its content changed, and
// xdg-mime re-runs harmlessly when the default is already set.
func registerScheme(scheme, exe string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	appsDir := filepath.Join(home, ".local", "share", "applications")
	if err := os.MkdirAll(appsDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(appsDir, desktopFileName)
	want := desktopFileContents(scheme, exe)
	if existing, err := os.ReadFile(path); err != nil || string(existing) != want {
		if err := os.WriteFile(path, []byte(want), 0644); err != nil {
			return err
		}
	}
	return exec.Command("xdg-mime", "default", desktopFileName, "x-scheme-handler/"+scheme).Run()
}

func desktopFileContents(scheme, exe string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=URI Dispatch Stub
Exec=%s %%u
NoDisplay=true
MimeType=x-scheme-handler/%s;
`, exe, scheme)
}
