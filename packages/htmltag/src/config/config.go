package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Parse modes
const (
	ModeDemand = "demand"
	ModeFull   = "full"
)

// Log backends
const (
	LogBackendZerolog = "zerolog"
	LogBackendZap     = "zap"
	LogBackendStd     = "std"
	LogBackendNone    = "none"
)

// Config holds the settings of the tagscan command
type Config struct {
	Environment  string `mapstructure:"ENVIRONMENT"`
	Mode         string `mapstructure:"MODE"`
	Workers      int    `mapstructure:"WORKERS"`
	LogBackend   string `mapstructure:"LOG_BACKEND"`
	TagTypesFile string `mapstructure:"TAG_TYPES_FILE"`
	TypeFilter   string `mapstructure:"TYPE_FILTER"`
}

// LoadConfig reads tagscan.yaml from path, if present, and TAGSCAN_* environment variables
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("tagscan")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TAGSCAN")
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("MODE", ModeFull)
	v.SetDefault("WORKERS", 4)
	v.SetDefault("LOG_BACKEND", LogBackendZerolog)
	v.SetDefault("TAG_TYPES_FILE", "")
	v.SetDefault("TYPE_FILTER", "")

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("cannot read config file: %w", err)
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	if err != nil {
		err = fmt.Errorf("cannot decode config: %w", err)
		return
	}
	err = config.Validate()
	return
}

// Validate checks that the settings are usable
func (config *Config) Validate() error {
	config.Mode = strings.ToLower(config.Mode)
	switch config.Mode {
	case ModeDemand, ModeFull:
	default:
		return fmt.Errorf("invalid mode %q, expecting %q or %q", config.Mode, ModeDemand, ModeFull)
	}
	config.LogBackend = strings.ToLower(config.LogBackend)
	switch config.LogBackend {
	case LogBackendZerolog, LogBackendZap, LogBackendStd, LogBackendNone:
	default:
		return fmt.Errorf("invalid log backend %q", config.LogBackend)
	}
	if config.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", config.Workers)
	}
	return nil
}

// IsDevelopment reports whether the environment is development
func (config *Config) IsDevelopment() bool {
	return config.Environment == "development"
}
