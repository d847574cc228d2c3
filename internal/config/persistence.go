// file: internal/config/persistence.go
// version: 2.0.0
// guid: 9c8d7e6f-5a4b-3c2d-1e0f-9a8b7c6d5e4f

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the home directory.
const FileName = ".library-catalog.yaml"

// ConfigFilePath returns the default config file path in the user's home
// directory, or "" when the home directory is unknown.
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// SaveConfigToFile writes AppConfig as YAML to path, or to ConfigFilePath
// when path is empty.
func SaveConfigToFile(path string) (string, error) {
	if path == "" {
		path = ConfigFilePath()
	}
	if path == "" {
		return "", fmt.Errorf("cannot determine config file path")
	}

	data, err := yaml.Marshal(AppConfig)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	slog.Info("configuration saved to file", "path", path)
	return path, nil
}

// LoadConfigFromFile reads a YAML config written by SaveConfigToFile.
// Keys missing from the file keep their defaults.
func LoadConfigFromFile(path string) (Config, error) {
	cfg := Config{
		CatalogFile:  DefaultCatalogFile,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		BackupDir:    DefaultBackupDir,
		MaxBackups:   DefaultMaxBackups,
		SuggestLimit: DefaultSuggestLimit,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
