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
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/logdate/lib/splitlog"
)

// EnvironmentVariable names the file read by Load.
const EnvironmentVariable = "LOGDATE_CONFIG"

// Config is the master configuration.
type Config struct {
	// Log configures the diagnostic logger of the commands themselves.
	Log LogConfig `yaml:"log"`

	// SplitLog configures the rotating log written by logdate-relay
	// and listed by "logdate archives".
	SplitLog SplitLogConfig `yaml:"split_log"`
}

// LogConfig configures command logging.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn, or error, with an
	// optional offset such as "info+2".
	// Default: info
	Level string `yaml:"level"`

	// Format is "text", "json", or "auto". Auto picks text when stderr
	// is a terminal.
	// Default: auto
	Format string `yaml:"format"`
}

// SplitLogConfig configures the rotating log writer.
type SplitLogConfig struct {
	// Directory holds the active file, the archives, and the index.
	// Default: ${HOME}/.local/state/logdate
	Directory string `yaml:"directory"`

	// Prefix is the base name of the log files.
	// Default: log
	Prefix string `yaml:"prefix"`

	// MaxSize rotates the active file before it would exceed this
	// size. Empty or "0" disables size rotation.
	MaxSize string `yaml:"max_size"`

	// Keep is the number of archives retained. Zero keeps all.
	Keep int `yaml:"keep"`

	// Packer is "none", "lz4", or "zstd".
	// Default: none
	Packer string `yaml:"packer"`

	// RotateEvery rotates on a timer, as a Go duration ("1h", "24h").
	// Empty disables timed rotation.
	RotateEvery string `yaml:"rotate_every"`
}

// Default returns the configuration a file is loaded over.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		SplitLog: SplitLogConfig{
			Directory: "${HOME}/.local/state/logdate",
			Prefix:    splitlog.DefaultPrefix,
			Packer:    splitlog.Plain.Name(),
		},
	}
}

// Load loads the file named by LOGDATE_CONFIG. It fails when the
// variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a logdate config file, or use --config", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, merged over Default, with
// variables expanded. It does not call Validate.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML, so one decoder serves both once
		// comments and trailing commas are gone.
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.SplitLog.Directory = expandVars(c.SplitLog.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, consulting vars
// before the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// MaxSizeBytes parses MaxSize. Empty means zero.
func (s SplitLogConfig) MaxSizeBytes() (int64, error) {
	if s.MaxSize == "" {
		return 0, nil
	}
	size, err := humanize.ParseBytes(s.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("split_log.max_size: %w", err)
	}
	if size > 1<<62 {
		return 0, fmt.Errorf("split_log.max_size: %s is too large", s.MaxSize)
	}
	return int64(size), nil
}

// RotateInterval parses RotateEvery. Empty means zero.
func (s SplitLogConfig) RotateInterval() (time.Duration, error) {
	if s.RotateEvery == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(s.RotateEvery)
	if err != nil {
		return 0, fmt.Errorf("split_log.rotate_every: %w", err)
	}
	if interval < 0 {
		return 0, fmt.Errorf("split_log.rotate_every: negative interval %s", s.RotateEvery)
	}
	return interval, nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json", "auto":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: text, json, auto (got %q)", c.Log.Format))
	}

	if c.SplitLog.Directory == "" {
		errs = append(errs, fmt.Errorf("split_log.directory is required"))
	}
	if c.SplitLog.Prefix == "" || strings.ContainsAny(c.SplitLog.Prefix, `/\`) {
		errs = append(errs, fmt.Errorf("split_log.prefix must be a plain file name (got %q)", c.SplitLog.Prefix))
	}
	if _, err := c.SplitLog.MaxSizeBytes(); err != nil {
		errs = append(errs, err)
	}
	if c.SplitLog.Keep < 0 {
		errs = append(errs, fmt.Errorf("split_log.keep must not be negative (got %d)", c.SplitLog.Keep))
	}
	if _, err := splitlog.PackerByName(c.SplitLog.Packer); err != nil {
		errs = append(errs, fmt.Errorf("split_log.packer: %w", err))
	}
	if _, err := c.SplitLog.RotateInterval(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SplitLogOptions converts the split_log section. Clock and Logger
// are left for the caller.
func (c *Config) SplitLogOptions() (splitlog.Options, error) {
	maxSize, err := c.SplitLog.MaxSizeBytes()
	if err != nil {
		return splitlog.Options{}, err
	}
	packer, err := splitlog.PackerByName(c.SplitLog.Packer)
	if err != nil {
		return splitlog.Options{}, fmt.Errorf("split_log.packer: %w", err)
	}
	return splitlog.Options{
		Directory: c.SplitLog.Directory,
		Prefix:    c.SplitLog.Prefix,
		MaxSize:   maxSize,
		Keep:      c.SplitLog.Keep,
		Packer:    packer,
	}, nil
}
