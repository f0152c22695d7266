package cliconfig

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	ListenAddr  string `toml:"listen_addr"`
	DictDir     string `toml:"dict_dir"`
	StrategyDir string `toml:"strategy_dir"`
	ServerInfo  string `toml:"server_info"`
	IdleTimeout string `toml:"idle_timeout"`
	HotReload   *bool  `toml:"hot_reload"`
	LogLevel    string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.dictsrv/config.toml, when the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".dictsrv", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config
// struct. Flags that were explicitly set (changed map) win over the
// file.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	setString := func(flag, value string, dst *string) {
		if value != "" && !changed[flag] {
			*dst = value
		}
	}

	setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	setString("dicts", fc.DictDir, &cfg.DictDir)
	setString("strategies", fc.StrategyDir, &cfg.StrategyDir)
	setString("server-info", fc.ServerInfo, &cfg.ServerInfo)
	setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if fc.IdleTimeout != "" && !changed["idle-timeout"] {
		d, err := time.ParseDuration(fc.IdleTimeout)
		if err != nil {
			return err
		}
		cfg.IdleTimeout = d
	}
	if fc.HotReload != nil && !changed["hot-reload"] {
		cfg.HotReload = *fc.HotReload
	}
	return nil
}
