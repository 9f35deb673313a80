//go:build windows

package config

import (
	"errors"
	"os"
	"path/filepath"
)

const appDirName = "uri-dispatch-stub"

// platformSettingsDir is %APPDATA%\uri-dispatch-stub on Windows.
func platformSettingsDir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return "", errors.New("APPDATA is not set")
	}
	return filepath.Join(appData, appDirName), nil
}
