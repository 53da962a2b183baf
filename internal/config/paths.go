package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default config file location:
//   - Windows: %APPDATA%\dropdock\config.csv
//   - macOS: ~/Library/Application Support/dropdock/config.csv
//   - Linux: ~/.config/dropdock/config.csv
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "dropdock", "config.csv")
		}
		return filepath.Join(homeDir, ".config", "dropdock", "config.csv")
	}
	return filepath.Join(configDir, "dropdock", "config.csv")
}

func parentDir(path string) string {
	return filepath.Dir(path)
}
