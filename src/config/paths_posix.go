//go:build !windows

package config

import (
	"os"
	"path/filepath"
)

const appDirName = "uri-dispatch-stub"

// platformSettingsDir is $HOME/.config/uri-dispatch-stub on POSIX systems.
func platformSettingsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDirName), nil
}
