package cliconfig

import (
	"fmt"
	"os"
	"time"
)

// Config is the fully resolved configuration of the dictd binary.
// Precedence: flags over file over defaults.
type Config struct {
	ListenAddr  string
	DictDir     string
	StrategyDir string
	ServerInfo  string
	IdleTimeout time.Duration
	HotReload   bool
	LogLevel    string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:  ":2628",
		IdleTimeout: 10 * time.Minute,
		LogLevel:    "info",
	}
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.DictDir != "" {
		if _, err := os.Stat(c.DictDir); err != nil {
			return fmt.Errorf("dictionary directory: %w", err)
		}
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout must not be negative")
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
