// Package config loads songtask settings from an optional YAML file and the
// environment.
//
// Precedence, lowest first: defaults, file, environment, command line flags.
// Flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/songtask/constants"
	"github.com/jsphweid/songtask/midi"
	"github.com/jsphweid/songtask/notes"
)

var (
	ErrInvalidLogLevel = errors.New("config: invalid log level")
	ErrInvalidFormat   = errors.New("config: invalid output format")
	ErrInvalidPairing  = errors.New("config: invalid pairing")
)

type Config struct {
	LogLevel    string `yaml:"log_level,omitempty"`
	Format      string `yaml:"format,omitempty"`
	Pairing     string `yaml:"pairing,omitempty"`
	PitchPolicy string `yaml:"pitch_policy,omitempty"`
	Listen      string `yaml:"listen,omitempty"`
}

func Default() *Config {
	return &Config{
		LogLevel:    constants.DefaultLogLevel,
		Format:      constants.DefaultFormat,
		Pairing:     constants.DefaultPairing,
		PitchPolicy: constants.DefaultPitchPolicy,
		Listen:      constants.DefaultListenAddr,
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(constants.EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(constants.EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(constants.EnvListenAddr); v != "" {
		cfg.Listen = v
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Pairing = strings.ToLower(cfg.Pairing)
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("%w: %q (must be text, yaml or json)", ErrInvalidFormat, c.Format)
	}
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q (must be debug, info, warn or error)", ErrInvalidLogLevel, c.LogLevel)
}

func (c *Config) Strategy() (notes.Strategy, error) {
	switch c.Pairing {
	case "fifo", "":
		return notes.FIFO, nil
	case "pitch":
		return notes.PitchStack, nil
	}
	return nil, fmt.Errorf("%w: %q (must be fifo or pitch)", ErrInvalidPairing, c.Pairing)
}

func (c *Config) Policy() (midi.PitchPolicy, error) {
	return midi.ParsePitchPolicy(c.PitchPolicy)
}

func (c *Config) Logger() *slog.Logger {
	level, _ := c.Level()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
