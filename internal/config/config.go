// Package config loads tomato settings from a YAML file, a .env file and
// TOMATO_* environment variables, in that order of increasing priority.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// PhaseDuration is the YAML form of a phase length.
type PhaseDuration struct {
	Minutes int `yaml:"minutes"`
	Seconds int `yaml:"seconds"`
}

func (d PhaseDuration) phaseConfig() domain.PhaseConfig {
	return domain.PhaseConfig{Minutes: d.Minutes, Seconds: d.Seconds}
}

type Notifications struct {
	Desktop bool `yaml:"desktop"`
	Bell    bool `yaml:"bell"`
}

type Config struct {
	Work            PhaseDuration `yaml:"work"`
	Break           PhaseDuration `yaml:"break"`
	AutoChain       bool          `yaml:"auto_chain"`
	CompletionDelay time.Duration `yaml:"completion_delay"`
	SkipDelay       time.Duration `yaml:"skip_delay"`
	Notifications   Notifications `yaml:"notifications"`
	DBPath          string        `yaml:"db_path"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
	MetricsTextfile string        `yaml:"metrics_textfile"`
	Watch           bool          `yaml:"watch"`

	// Path is the file the config was read from; empty for pure defaults.
	Path string `yaml:"-"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		Work:            PhaseDuration{Minutes: 25},
		Break:           PhaseDuration{Minutes: 5},
		AutoChain:       true,
		CompletionDelay: 500 * time.Millisecond,
		SkipDelay:       300 * time.Millisecond,
		Notifications:   Notifications{Desktop: true, Bell: true},
		DBPath:          filepath.Join(dir, "tomato.db"),
		LogFile:         filepath.Join(dir, "tomato.log"),
		LogLevel:        "info",
		Watch:           true,
	}
}

// DefaultDir is ~/.tomato, or .tomato when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tomato"
	}
	return filepath.Join(home, ".tomato")
}

// DefaultPath honours $TOMATO_CONFIG before falling back to
// ~/.tomato/config.yaml.
func DefaultPath() string {
	if v := os.Getenv("TOMATO_CONFIG"); v != "" {
		return ExpandHome(v)
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	path = ExpandHome(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.DBPath = ExpandHome(cfg.DBPath)
	cfg.LogFile = ExpandHome(cfg.LogFile)
	cfg.MetricsTextfile = ExpandHome(cfg.MetricsTextfile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks both phase lengths and the delays.
func (c *Config) Validate() error {
	if _, err := c.Durations(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.CompletionDelay < 0 {
		return fmt.Errorf("%w: completion_delay must not be negative", ErrInvalidConfig)
	}
	if c.SkipDelay < 0 {
		return fmt.Errorf("%w: skip_delay must not be negative", ErrInvalidConfig)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Durations builds validated phase lengths from the config.
func (c *Config) Durations() (*domain.Durations, error) {
	return domain.NewDurations(c.Work.phaseConfig(), c.Break.phaseConfig())
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

// YAML renders the effective configuration.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(out), nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
