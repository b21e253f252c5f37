package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the gqlview configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Schema  SchemaConfig  `mapstructure:"schema"`
	Otel    OtelConfig    `mapstructure:"otel"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Table   TableConfig   `mapstructure:"table"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Pretty       bool          `mapstructure:"pretty"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// SchemaConfig points at a static introspection fixture used when a
// request carries none.
type SchemaConfig struct {
	Introspection string `mapstructure:"introspection"`
}

type OtelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type TableConfig struct {
	PerPage int `mapstructure:"per_page"`
}

// EnvPrefix prefixes environment overrides, e.g. GQLVIEW_SERVER_ADDR.
const EnvPrefix = "GQLVIEW"

// New returns a viper instance with defaults, environment binding and the
// optional gqlview.yaml search path set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.pretty", false)
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("schema.introspection", "")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service", "gqlview")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("table.per_page", 0)

	v.SetConfigName("gqlview")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if there is one and decodes v. file overrides
// the search path when not empty.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must not be negative, got: %s", cfg.Server.Timeout)
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative, got: %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Table.PerPage < 0 {
		return fmt.Errorf("table.per_page must not be negative, got: %d", cfg.Table.PerPage)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got: %s", cfg.Log.Level)
	}
	return nil
}
