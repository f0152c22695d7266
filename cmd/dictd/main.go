package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	dictsrv "github.com/dictsrv/dictsrv"
	"github.com/dictsrv/dictsrv/internal/cliconfig"
	"github.com/dictsrv/dictsrv/internal/zlog"
)

const longHelp = `dictd serves dictionary lookups over the DICT protocol (RFC 2229).

It loads dict.org .index/.dict pairs and .json databases from a
directory, answers DEFINE and MATCH queries under the built-in and
Lua-defined strategies, and can hot-reload dictionary data without
dropping client sessions.`

const exampleUsage = `  dictd --dicts /usr/share/dictd
  dictd --listen 127.0.0.1:2628 --dicts ./dicts --hot-reload
  dictd --config $HOME/.dictsrv/config.toml`

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "dictd",
		Short:   "DICT protocol dictionary server",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", dictsrv.Version, runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			cliconfig.SetLevel(cfg.LogLevel)

			opts := []dictsrv.Option{
				dictsrv.WithListenAddr(cfg.ListenAddr),
				dictsrv.WithIdleTimeout(cfg.IdleTimeout),
				dictsrv.WithHotReload(cfg.HotReload),
				dictsrv.WithLogger(zlog.New(log)),
			}
			if cfg.DictDir != "" {
				opts = append(opts, dictsrv.WithDictDir(cfg.DictDir))
			}
			if cfg.StrategyDir != "" {
				opts = append(opts, dictsrv.WithStrategyDir(cfg.StrategyDir))
			}
			if cfg.ServerInfo != "" {
				opts = append(opts, dictsrv.WithServerInfo(cfg.ServerInfo))
			}

			svc, err := dictsrv.New(opts...)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if err := svc.Start(ctx); err != nil {
				return fmt.Errorf("start server: %w", err)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

			for {
				sig := <-sigCh
				if sig == syscall.SIGHUP {
					// SIGHUP reloads dictionaries without a restart.
					if err := svc.Reload(); err != nil {
						log.Error().Err(err).Msg("reload failed")
					}
					continue
				}
				log.Info().Str("signal", sig.String()).Msg("shutting down")
				break
			}

			return svc.Close()
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.dictsrv/config.toml)")
	root.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "TCP listen address")
	root.Flags().StringVar(&cfg.DictDir, "dicts", cfg.DictDir, "directory of dictionary databases")
	root.Flags().StringVar(&cfg.StrategyDir, "strategies", cfg.StrategyDir, "directory of Lua strategy scripts")
	root.Flags().StringVar(&cfg.ServerInfo, "server-info", cfg.ServerInfo, "site-specific text for SHOW SERVER")
	root.Flags().DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "close sessions idle this long (0 disables)")
	root.Flags().BoolVar(&cfg.HotReload, "hot-reload", cfg.HotReload, "reload dictionaries when files change")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("dictd")
		os.Exit(1)
	}
}
