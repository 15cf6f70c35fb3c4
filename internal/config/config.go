// Package config loads kennel settings from defaults, an optional YAML file,
// KENNEL_* environment variables, and explicitly set command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	DefaultConfigFile   = "kennel.yaml"
	DefaultDatabasePath = "dogs.db"
	DefaultPort         = 8080
	DefaultBcryptCost   = 12

	envPrefix = "KENNEL_"
)

// Config holds all kennel settings. Keys are flat so that env vars map to
// them directly: KENNEL_DATABASE_PATH -> database_path.
type Config struct {
	DatabaseDriver    string `koanf:"database_driver"`
	DatabasePath      string `koanf:"database_path"`
	DatabaseURL       string `koanf:"database_url"`
	Port              int    `koanf:"port"`
	JWTSecret         string `koanf:"jwt_secret"`
	AdminPasswordHash string `koanf:"admin_password_hash"`
	BcryptCost        int    `koanf:"bcrypt_cost"`
	LogLevel          string `koanf:"log_level"`
	LogFormat         string `koanf:"log_format"`
	Output            string `koanf:"output"`
}

func defaults() map[string]any {
	return map[string]any{
		"database_driver": DriverSQLite,
		"database_path":   DefaultDatabasePath,
		"port":            DefaultPort,
		"bcrypt_cost":     DefaultBcryptCost,
		"log_level":       "info",
		"log_format":      "multi",
		"output":          "table",
	}
}

// Load builds a Config. Precedence (highest to lowest):
// flags > env vars > config file > defaults.
// An empty cfgFile falls back to ./kennel.yaml when it exists.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	// KENNEL_DATABASE_PATH -> database_path
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings every command depends on.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("database_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database_driver %q", c.DatabaseDriver)
	}

	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 14, got %d", c.BcryptCost)
	}

	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	return nil
}

// ValidateServer checks the extra settings required to serve the HTTP API.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("jwt_secret must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.AdminPasswordHash == "" {
		return errors.New("admin_password_hash is required (generate one with `kennel hash-password`)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}
