package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - RESIDUE_CONFIG_PATH: config file location (default: ~/.config/residue.toml)
//   - RESIDUE_HOME: base directory for residue data (default: ~/.local/share/residue)
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
		"reports_dir": filepath.Join(baseDir, "reports"),
	}, nil
}

// getConfigPath returns the config file path, checking RESIDUE_CONFIG_PATH env var first,
// then falling back to the default ~/.config/residue.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("RESIDUE_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "residue.toml"), nil
}

// getBaseDir returns the base directory for residue data, checking RESIDUE_HOME env var first,
// then falling back to the XDG default ~/.local/share/residue.
func getBaseDir() (string, error) {
	if path := os.Getenv("RESIDUE_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "residue"), nil
}
