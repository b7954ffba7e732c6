package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process
// environment. Variables that are already set win. A missing file is
// ignored.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TOMATO_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("TOMATO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TOMATO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TOMATO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TOMATO_METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}
	if v := os.Getenv("TOMATO_AUTO_CHAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: TOMATO_AUTO_CHAIN=%q", ErrInvalidConfig, v)
		}
		cfg.AutoChain = b
	}
	if v := os.Getenv("TOMATO_WORK"); v != "" {
		d, err := ParseClock(v)
		if err != nil {
			return fmt.Errorf("%w: TOMATO_WORK: %w", ErrInvalidConfig, err)
		}
		cfg.Work = d
	}
	if v := os.Getenv("TOMATO_BREAK"); v != "" {
		d, err := ParseClock(v)
		if err != nil {
			return fmt.Errorf("%w: TOMATO_BREAK: %w", ErrInvalidConfig, err)
		}
		cfg.Break = d
	}
	return nil
}

// ParseClock accepts "MM:SS" or a bare number of minutes. Range checks
// are left to Validate.
func ParseClock(s string) (PhaseDuration, error) {
	s = strings.TrimSpace(s)
	mm, ss, hasColon := strings.Cut(s, ":")
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return PhaseDuration{}, fmt.Errorf("parsing minutes in %q", s)
	}
	if !hasColon {
		return PhaseDuration{Minutes: minutes}, nil
	}
	seconds, err := strconv.Atoi(ss)
	if err != nil {
		return PhaseDuration{}, fmt.Errorf("parsing seconds in %q", s)
	}
	return PhaseDuration{Minutes: minutes, Seconds: seconds}, nil
}
