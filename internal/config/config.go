// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sourcedestination/saidb/internal/store"
	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. SAIDB_STORAGE_MYSQL_HOST.
const EnvPrefix = "SAIDB"

// Config is the top-level saidb configuration.
type Config struct {
	Storage store.StorageConfig `mapstructure:"storage"`
	Server  ServerConfig        `mapstructure:"server"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Listen       string        `mapstructure:"listen"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SetDefaults registers every default on v. Keys must have a default for
// environment overrides to reach them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "mysql")
	v.SetDefault("storage.initialize", false)
	v.SetDefault("storage.page_size", store.DefaultPageSize)
	v.SetDefault("storage.max_open_conns", store.DefaultMaxOpenConns)
	v.SetDefault("storage.slow_query_threshold", store.DefaultSlowQueryThreshold)

	v.SetDefault("storage.mysql.host", "127.0.0.1:3306")
	v.SetDefault("storage.mysql.database", "sai")
	v.SetDefault("storage.mysql.username", "sai")
	v.SetDefault("storage.mysql.password", "")
	v.SetDefault("storage.mysql.connect_timeout", 5*time.Second)
	v.SetDefault("storage.mysql.read_timeout", 30*time.Second)
	v.SetDefault("storage.mysql.write_timeout", 30*time.Second)

	v.SetDefault("storage.sqlite.path", "saidb.db")

	v.SetDefault("server.listen", "127.0.0.1:7474")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
}

// SetupEnv enables SAIDB_ environment overrides on v.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, saierr.Errorf(saierr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, saierr.Errorf(saierr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix SAIDB_).
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, saierr.Errorf(saierr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// Validate checks the configuration for logical errors.
// It returns a slice of all validation errors found, collecting all issues
// rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateServer()...)

	return errs
}

func invalid(format string, args ...any) error {
	return saierr.Errorf(saierr.CodeConfigValidateInvalidValue, "config: "+format, args...)
}

func (c *Config) validateStorage() []error {
	var errs []error
	s := c.Storage

	switch s.Backend {
	case "mysql":
		m := s.MySQL
		if m.Host == "" {
			errs = append(errs, invalid("storage.mysql.host must not be empty"))
		} else if strings.Contains(m.Host, ":") {
			if err := validateHostPort(m.Host); err != nil {
				errs = append(errs, invalid("storage.mysql.host %s", err))
			}
		}
		if m.Database == "" {
			errs = append(errs, invalid("storage.mysql.database must not be empty"))
		}
		timeouts := []struct {
			key string
			d   time.Duration
		}{
			{"connect_timeout", m.ConnectTimeout},
			{"read_timeout", m.ReadTimeout},
			{"write_timeout", m.WriteTimeout},
		}
		for _, to := range timeouts {
			if to.d <= 0 {
				errs = append(errs, invalid("storage.mysql.%s must be greater than 0, got %s", to.key, to.d))
			}
		}
	case "sqlite":
		if s.SQLite.Path == "" {
			errs = append(errs, invalid("storage.sqlite.path must not be empty"))
		}
	default:
		errs = append(errs, invalid("storage.backend must be one of [mysql, sqlite], got %q", s.Backend))
	}

	if s.PageSize <= 0 {
		errs = append(errs, invalid("storage.page_size must be greater than 0, got %d", s.PageSize))
	}
	if s.MaxOpenConns <= 0 {
		errs = append(errs, invalid("storage.max_open_conns must be greater than 0, got %d", s.MaxOpenConns))
	}
	if s.SlowQueryThreshold < 0 {
		errs = append(errs, invalid("storage.slow_query_threshold must not be negative, got %s", s.SlowQueryThreshold))
	}

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, invalid("server.listen must not be empty"))
	} else if err := validateHostPort(c.Server.Listen); err != nil {
		errs = append(errs, invalid("server.listen %s", err))
	}

	for i, origin := range c.Server.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, invalid("server.cors_origins[%d] must not be empty", i))
		}
	}

	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, invalid("server.read_timeout must be greater than 0, got %s", c.Server.ReadTimeout))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, invalid("server.write_timeout must be greater than 0, got %s", c.Server.WriteTimeout))
	}

	return errs
}

// validateHostPort accepts host:port with a numeric port in range. The
// host may be empty (":7474").
func validateHostPort(addr string) error {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return saierr.Errorf(saierr.CodeConfigValidateInvalidValue,
			"must be a valid host:port address, got %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return saierr.Errorf(saierr.CodeConfigValidateInvalidValue, "port must be a number, got %q", portStr)
	}
	if port < 1 || port > 65535 {
		return saierr.Errorf(saierr.CodeConfigValidateInvalidValue, "port must be between 1 and 65535, got %d", port)
	}
	return nil
}
