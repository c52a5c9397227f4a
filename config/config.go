// Package config holds configuration for the Vigil CLI layer. The monitoring
// core itself takes no configuration: its policy values (risk threshold,
// token length) are fixed constants in the core package.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all settings for the CLI and rendering layer.
type Config struct {
	// LogLevel is the zap level for structured logging: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	Report struct {
		// Format selects the report rendering: text or yaml.
		Format string `mapstructure:"format"`
		// Color enables colorized terminal output for text reports.
		Color bool `mapstructure:"color"`
	} `mapstructure:"report"`

	Export struct {
		// Path is where the events export command writes its lines.
		Path string `mapstructure:"path"`
	} `mapstructure:"export"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("report.format", "text")
	v.SetDefault("report.color", true)
	v.SetDefault("export.path", "vigil-events.log")
}

// Load reads configuration from an optional vigil.yaml in the working
// directory plus VIGIL_* environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("vigil")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VIGIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file: defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	switch cfg.Report.Format {
	case "text", "yaml":
	default:
		return nil, fmt.Errorf("invalid report format %q (want text or yaml)", cfg.Report.Format)
	}

	return &cfg, nil
}
