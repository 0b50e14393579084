// Package config loads CLI settings from flags, environment and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GAMEDATA_LOG_LEVEL.
const EnvPrefix = "GAMEDATA"

// Config holds the effective CLI settings.
type Config struct {
	Output        string `mapstructure:"output"`
	Pretty        bool   `mapstructure:"pretty"`
	Workers       int    `mapstructure:"workers" validate:"gte=0,lte=256"`
	IncludeTables bool   `mapstructure:"include-tables"`
	IssuesJSON    bool   `mapstructure:"issues-json"`
	LogLevel      string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	LogJSON       bool   `mapstructure:"log-json"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		IncludeTables: true,
		LogLevel:      "info",
	}
}

// RegisterFlags adds every setting as a flag on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP("output", "o", d.Output, "Output file path")
	fs.Bool("pretty", d.Pretty, "Pretty-print JSON output")
	fs.Int("workers", d.Workers, "Concurrent sheet readers (0: one per CPU)")
	fs.Bool("include-tables", d.IncludeTables, "Include generic per-sheet tables in the output")
	fs.Bool("issues-json", d.IssuesJSON, "Print issues as JSON on stdout")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn, error")
	fs.Bool("log-json", d.LogJSON, "Log in JSON format")
	fs.String("config", "", "Config file (default: ./gamedata.yaml if present)")
}

// Load resolves settings with precedence flag > env > config file > default.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("output", d.Output)
	v.SetDefault("pretty", d.Pretty)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("include-tables", d.IncludeTables)
	v.SetDefault("issues-json", d.IssuesJSON)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-json", d.LogJSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("gamedata")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
