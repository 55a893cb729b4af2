package file

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "sentinel"

// DefaultConfigDir returns the directory holding config.toml and prompts/.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// DefaultDataDir returns the directory holding the SQLite database.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// DefaultExportDir returns the directory report files are written to.
func DefaultExportDir() string {
	return filepath.Join(xdg.DataHome, appName, "reports")
}

// DefaultPromptDir returns the prompt template directory inside configDir.
func DefaultPromptDir(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "prompts")
}
