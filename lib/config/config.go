// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format selects how the command writes lines.
type Format string

const (
	// FormatText writes one line of text per line.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatCBOR writes a CBOR sequence of records.
	FormatCBOR Format = "cbor"
)

// Formats lists the accepted Format values.
var Formats = []Format{FormatText, FormatJSON, FormatCBOR}

// Config configures one linetail invocation.
type Config struct {
	// File is the path of the file to read.
	File string `yaml:"file"`

	// RefreshPeriod is the background scan interval as a Go duration
	// string. "0s" disables background scanning.
	// Default: 0s
	RefreshPeriod string `yaml:"refresh_period"`

	// CacheCapacity is the number of recent lines kept in memory.
	// Default: 1024
	CacheCapacity int `yaml:"cache_capacity"`

	// LogLevel is one of debug, info, warn, error.
	// Default: warn
	LogLevel string `yaml:"log_level"`

	// Format is the output encoding.
	// Default: text
	Format Format `yaml:"format"`
}

// Default returns the default configuration. Values from the config
// file are merged over it.
func Default() *Config {
	return &Config{
		RefreshPeriod: "0s",
		CacheCapacity: 1024,
		LogLevel:      "warn",
		Format:        FormatText,
	}
}

// Load loads configuration from the file named by LINETAIL_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv("LINETAIL_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("LINETAIL_CONFIG environment variable not set; " +
			"set it to the path of a linetail config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

// loadFile merges one file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// YAML is a superset of JSON, so JSONC only needs its comments and
	// trailing commas stripped.
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	return yaml.Unmarshal(data, c)
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// file path.
func (c *Config) expandVariables() {
	c.File = expandVars(c.File, map[string]string{"HOME": os.Getenv("HOME")})
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// RefreshDuration parses RefreshPeriod.
func (c *Config) RefreshDuration() (time.Duration, error) {
	period, err := time.ParseDuration(c.RefreshPeriod)
	if err != nil {
		return 0, fmt.Errorf("refresh_period: %w", err)
	}
	return period, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.File == "" {
		errs = append(errs, fmt.Errorf("file is required"))
	}

	if period, err := c.RefreshDuration(); err != nil {
		errs = append(errs, err)
	} else if period < 0 {
		errs = append(errs, fmt.Errorf("refresh_period must not be negative, got %s", c.RefreshPeriod))
	}

	if c.CacheCapacity < 0 {
		errs = append(errs, fmt.Errorf("cache_capacity must not be negative, got %d", c.CacheCapacity))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("format must be one of: %v", Formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
