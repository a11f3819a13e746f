package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents the zplc configuration
type Config struct {
	Root    string        `mapstructure:"root"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Panel   PanelConfig   `mapstructure:"panel"`
	Diagram DiagramConfig `mapstructure:"diagram"`
	Log     LogConfig     `mapstructure:"log"`
}

// ScanConfig represents source discovery configuration
type ScanConfig struct {
	Definitions string   `mapstructure:"definitions"`
	Scripts     string   `mapstructure:"scripts"`
	Exclude     []string `mapstructure:"exclude"`
}

// PanelConfig represents UI panel extraction configuration
type PanelConfig struct {
	AutoColumns []string `mapstructure:"auto_columns"`
}

// DiagramConfig represents relationship diagram configuration
type DiagramConfig struct {
	Header string `mapstructure:"header"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// EnvPrefix prefixes environment overrides (ZPLC_ROOT, ZPLC_LOG_LEVEL, ...)
const EnvPrefix = "ZPLC"

// Load loads the configuration from zplc.yml or zplc.yaml in the working
// directory, environment variables and defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("root", ".")
	v.SetDefault("scan.definitions", "*.py")
	v.SetDefault("scan.scripts", "*.js")
	v.SetDefault("scan.exclude", []string{})
	v.SetDefault("panel.auto_columns", []string{"severity", "monitored", "locking"})
	v.SetDefault("diagram.header", "RELATIONSHIPS_YUML")
	v.SetDefault("log.level", "warn")

	// Set config name and paths
	v.SetConfigName("zplc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.WarnLevel
	}
	return level
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Scan.Definitions) == "" {
		return fmt.Errorf("scan.definitions must not be empty")
	}
	if strings.TrimSpace(cfg.Scan.Scripts) == "" {
		return fmt.Errorf("scan.scripts must not be empty")
	}
	if strings.TrimSpace(cfg.Diagram.Header) == "" {
		return fmt.Errorf("diagram.header must not be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level must be a valid level, got: %s", cfg.Log.Level)
	}
	return nil
}
