package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - CBACK_CONFIG_PATH: config file location (default: ~/.config/cback.toml)
//   - CBACK_HOME: base directory for cback data (default: ~/.local/share/cback)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking CBACK_CONFIG_PATH env
// var first, then falling back to the default ~/.config/cback.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("CBACK_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cback.toml"), nil
}

// getBaseDir returns the base directory for cback data, checking CBACK_HOME
// env var first, then falling back to the XDG default ~/.local/share/cback.
func getBaseDir() (string, error) {
	if path := os.Getenv("CBACK_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "cback"), nil
}
