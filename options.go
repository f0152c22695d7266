package dictsrv

import (
	"time"

	"github.com/dictsrv/dictsrv/dict"
)

// config holds the configuration for a Service
type config struct {
	// Network settings
	listenAddr  string
	idleTimeout time.Duration

	// Dictionary sources
	dictDir     string
	strategyDir string
	databases   []*dict.Database
	strategies  []dict.Strategy

	// Presentation
	serverInfo string

	// Behavioral options
	hotReload bool

	// Observability
	logger Logger
}

// defaultConfig returns a configuration with sensible defaults
func defaultConfig() *config {
	return &config{
		// 2628 is the IANA-registered DICT port.
		listenAddr:  ":2628",
		idleTimeout: 10 * time.Minute,
		logger:      &defaultLogger{},
	}
}

// Option represents a configuration option for a Service
type Option func(*config) error

// WithListenAddr sets the address the DICT server listens on
//
// Example:
//
//	WithListenAddr(":2628")
//	WithListenAddr("127.0.0.1:2628")
func WithListenAddr(addr string) Option {
	return func(c *config) error {
		if addr == "" {
			return ErrInvalidConfig
		}
		c.listenAddr = addr
		return nil
	}
}

// WithDictDir sets the directory scanned for dictionary databases
// (.index/.dict pairs and .json files)
//
// Example:
//
//	WithDictDir("/usr/share/dictd")
func WithDictDir(dir string) Option {
	return func(c *config) error {
		c.dictDir = dir
		return nil
	}
}

// WithStrategyDir sets a directory of Lua strategy scripts loaded in
// addition to the built-in strategies
//
// Example:
//
//	WithStrategyDir("/etc/dictsrv/strategies")
func WithStrategyDir(dir string) Option {
	return func(c *config) error {
		c.strategyDir = dir
		return nil
	}
}

// WithDatabase registers an in-memory database directly, bypassing the
// file loader. Useful for tests and embedded use.
func WithDatabase(db *dict.Database) Option {
	return func(c *config) error {
		if db == nil {
			return ErrInvalidConfig
		}
		c.databases = append(c.databases, db)
		return nil
	}
}

// WithStrategy registers an additional matching strategy
func WithStrategy(s dict.Strategy) Option {
	return func(c *config) error {
		if s.Name == "" || s.Match == nil {
			return ErrInvalidConfig
		}
		c.strategies = append(c.strategies, s)
		return nil
	}
}

// WithServerInfo sets the site-specific text served by SHOW SERVER
func WithServerInfo(text string) Option {
	return func(c *config) error {
		c.serverInfo = text
		return nil
	}
}

// WithIdleTimeout closes client sessions idle for longer than d.
// Zero disables the timeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return ErrInvalidConfig
		}
		c.idleTimeout = d
		return nil
	}
}

// WithHotReload watches the dictionary directory and swaps in a freshly
// built registry when files change. In-flight commands keep the
// snapshot they started with.
func WithHotReload(enabled bool) Option {
	return func(c *config) error {
		c.hotReload = enabled
		return nil
	}
}

// WithLogger sets a custom logger for the service
//
// Example:
//
//	WithLogger(myCustomLogger)
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return ErrInvalidConfig
		}
		c.logger = logger
		return nil
	}
}
