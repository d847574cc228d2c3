// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"slices"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	CatalogFile  string `yaml:"catalog_file"`
	AtomicWrites bool   `yaml:"atomic_writes"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	BackupDir  string `yaml:"backup_dir"`
	MaxBackups int    `yaml:"max_backups"`

	MetricsFile  string `yaml:"metrics_file"`
	SuggestLimit int    `yaml:"suggest_limit"`
}

var AppConfig Config

// Defaults
const (
	DefaultCatalogFile  = "library.csv"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultBackupDir    = "backups"
	DefaultMaxBackups   = 10
	DefaultSuggestLimit = 5
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("catalog_file", DefaultCatalogFile)
	viper.SetDefault("atomic_writes", false)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("log_format", DefaultLogFormat)
	viper.SetDefault("backup_dir", DefaultBackupDir)
	viper.SetDefault("max_backups", DefaultMaxBackups)
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("suggest_limit", DefaultSuggestLimit)
}

// InitConfig initializes the application configuration
func InitConfig() {
	SetDefaults()

	AppConfig = Config{
		CatalogFile:  viper.GetString("catalog_file"),
		AtomicWrites: viper.GetBool("atomic_writes"),
		LogLevel:     viper.GetString("log_level"),
		LogFormat:    viper.GetString("log_format"),
		BackupDir:    viper.GetString("backup_dir"),
		MaxBackups:   viper.GetInt("max_backups"),
		MetricsFile:  viper.GetString("metrics_file"),
		SuggestLimit: viper.GetInt("suggest_limit"),
	}

	// "warning" is accepted as an alias
	if AppConfig.LogLevel == "warning" {
		AppConfig.LogLevel = "warn"
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.CatalogFile == "" {
		return fmt.Errorf("catalog_file must not be empty")
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (want one of %v)", c.LogLevel, validLogLevels)
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format %q (want one of %v)", c.LogFormat, validLogFormats)
	}
	if c.MaxBackups < 0 {
		return fmt.Errorf("max_backups must not be negative, got %d", c.MaxBackups)
	}
	if c.SuggestLimit < 0 {
		return fmt.Errorf("suggest_limit must not be negative, got %d", c.SuggestLimit)
	}
	return nil
}
