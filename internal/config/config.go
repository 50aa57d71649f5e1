// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration shared by the CLI and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/troy-haydens-bot/Strang-4-subspace/internal/logging"
)

// Environment overrides applied by Load after the file is read.
const (
	EnvPort     = "SUBSPACES_PORT"
	EnvLogLevel = "SUBSPACES_LOG_LEVEL"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the root document.
type Config struct {
	Limits  LimitsConfig  `yaml:"limits"`
	Numeric NumericConfig `yaml:"numeric"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// LimitsConfig bounds accepted matrices; 0 disables a side.
type LimitsConfig struct {
	MaxRows int `yaml:"max_rows"`
	MaxCols int `yaml:"max_cols"`
}

// NumericConfig holds the rank tolerance; 0 selects the automatic policy.
type NumericConfig struct {
	Tolerance float64 `yaml:"tolerance"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// LogConfig selects level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration. The 3×3 limit matches what the
// browser visualizer can draw.
func Default() Config {
	return Config{
		Limits: LimitsConfig{MaxRows: 3, MaxCols: 3},
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           5000,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info", Format: logging.FormatConsole},
	}
}

// Load reads path over Default, applies environment overrides and validates.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err = yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a port", ErrInvalidConfig, EnvPort, v)
		}
		c.Server.Port = p
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}

	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Limits.MaxRows < 0 || c.Limits.MaxCols < 0:
		return fmt.Errorf("%w: limits must be non-negative, got %dx%d", ErrInvalidConfig, c.Limits.MaxRows, c.Limits.MaxCols)
	case c.Numeric.Tolerance < 0 || math.IsNaN(c.Numeric.Tolerance) || math.IsInf(c.Numeric.Tolerance, 0):
		return fmt.Errorf("%w: numeric.tolerance must be finite and non-negative, got %g", ErrInvalidConfig, c.Numeric.Tolerance)
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	case c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0:
		return fmt.Errorf("%w: server timeouts must be non-negative", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// Addr is host:port for the HTTP listener.
func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }
