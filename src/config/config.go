package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SettingsFileName  = "settings.env"
	SettingsDirEnvVar = "URI_STUB_SETTINGS_DIR"

	defaultIdleTimeoutMS = 500
	defaultSchemes       = "ida,disas"
)

// ErrMissingToolPath is returned when the settings file exists but does not
// name the external processing tool.
var ErrMissingToolPath = errors.New("PROCESSING_TOOL_PATH is required")

// Config holds the settings read once at startup. It is never written back.
type Config struct {
	ToolPath      string
	SearchPaths   []string
	Schemes       []string
	DebugLog      bool
	IdleTimeoutMS int
	SettingsDir   string
}

// Load reads settings.env from the platform settings directory.
// Missing file, unreadable file, or a missing PROCESSING_TOOL_PATH are all
// fatal: the caller must show the error and exit non-zero.
func Load() (*Config, error) {
	dir, err := settingsDir()
	if err != nil {
		return nil, fmt.Errorf("resolve settings directory: %w", err)
	}
	return LoadFrom(dir)
}

// LoadFrom reads settings.env from an explicit directory.
func LoadFrom(dir string) (*Config, error) {
	path := filepath.Join(dir, SettingsFileName)
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("settings could not be loaded from %s: %w", path, err)
	}

	toolPath := strings.TrimSpace(values["PROCESSING_TOOL_PATH"])
	if toolPath == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingToolPath)
	}

	cfg := &Config{
		ToolPath:      toolPath,
		SearchPaths:   splitList(values["EXTRA_SEARCH_PATHS"]),
		Schemes:       splitList(getWithDefault(values, "URI_SCHEMES", defaultSchemes)),
		DebugLog:      strings.ToLower(values["DEBUG_LOG"]) == "true",
		IdleTimeoutMS: resolveIdleTimeout(values["IDLE_TIMEOUT_MS"]),
		SettingsDir:   dir,
	}
	return cfg, nil
}

// settingsDir honors URI_STUB_SETTINGS_DIR before falling back to the
// platform default (platformSettingsDir is build-tagged).
func settingsDir() (string, error) {
	if alt := os.Getenv(SettingsDirEnvVar); alt != "" {
		return alt, nil
	}
	return platformSettingsDir()
}

// splitList splits a comma-separated value, trimming whitespace and dropping
// empty entries. Order is preserved.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resolveIdleTimeout(v string) int {
	if v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultIdleTimeoutMS
}

func getWithDefault(values map[string]string, key, defaultValue string) string {
	if v := values[key]; v != "" {
		return v
	}
	return defaultValue
}
