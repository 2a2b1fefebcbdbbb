package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/username/bizdate/pkg/offset"
	"go.uber.org/zap/zapcore"
)

// Config represents application configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Offset  OffsetConfig  `mapstructure:"offset"`
	Export  ExportConfig  `mapstructure:"export"`
}

// LoggingConfig represents logger configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`  // Empty means console
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// OffsetConfig represents date offset defaults
type OffsetConfig struct {
	DefaultUnit string `mapstructure:"default_unit"` // BD, M or Y
	DateLayout  string `mapstructure:"date_layout"`  // Go layout tried before the built-in ones
}

// ExportConfig represents batch output configuration
type ExportConfig struct {
	SnapshotFile string `mapstructure:"snapshot_file"`
}

// Load loads configuration from file. A missing file is not an error:
// defaults and BIZDATE_* environment variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("offset.default_unit", "BD")
	v.SetDefault("offset.date_layout", "2006-01-02")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bizdate")
		v.AddConfigPath("/etc/bizdate")
	}

	// Read environment variables
	v.SetEnvPrefix("BIZDATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := offset.ParseUnit(c.Offset.DefaultUnit); err != nil {
		return fmt.Errorf("offset.default_unit: %w", err)
	}
	if c.Offset.DateLayout == "" {
		return fmt.Errorf("offset.date_layout is required")
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got '%s'", c.Logging.Level)
	}

	return nil
}

// GetDefaultUnit returns the configured default offset unit
func (c *OffsetConfig) GetDefaultUnit() offset.Unit {
	unit, err := offset.ParseUnit(c.DefaultUnit)
	if err != nil {
		return offset.BusinessDays
	}
	return unit
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Logging.File = os.ExpandEnv(c.Logging.File)
	c.Export.SnapshotFile = os.ExpandEnv(c.Export.SnapshotFile)
}
