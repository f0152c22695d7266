package dictsrv

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dictsrv/dictsrv/dict"
	"github.com/dictsrv/dictsrv/loader"
	"github.com/dictsrv/dictsrv/lua"
	"github.com/dictsrv/dictsrv/server"
)

// Service is a complete DICT server: loaded dictionary registries, the
// strategy set, and the protocol server, wired together and managed as
// one unit.
type Service struct {
	// Configuration
	config *config

	// Components
	registry  atomic.Pointer[dict.Registry]
	server    *server.Server
	luaEngine *lua.Engine

	// Lua strategies are compiled once and survive registry reloads.
	luaStrategies []dict.Strategy

	// Hot reload
	watcher   *fsnotify.Watcher
	watcherWg sync.WaitGroup
	stopWatch chan struct{}

	// State
	mu      sync.Mutex
	started bool
	closed  bool
}

// New creates a Service with the given options.
//
// Dictionaries and Lua strategies are loaded eagerly so configuration
// problems surface before the listener binds. The service is created
// but not started; use Start() to begin accepting connections.
//
// Example:
//
//	svc, err := dictsrv.New(
//		dictsrv.WithListenAddr(":2628"),
//		dictsrv.WithDictDir("/usr/share/dictd"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer svc.Close()
func New(opts ...Option) (*Service, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	svc := &Service{
		config:    cfg,
		luaEngine: lua.NewEngine(),
		stopWatch: make(chan struct{}),
	}

	if cfg.strategyDir != "" {
		strategies, err := svc.luaEngine.LoadDir(cfg.strategyDir)
		if err != nil {
			svc.luaEngine.Close()
			return nil, &LoadError{Source: cfg.strategyDir, Err: err}
		}
		svc.luaStrategies = strategies
	}

	registry, err := svc.buildRegistry()
	if err != nil {
		svc.luaEngine.Close()
		return nil, err
	}
	svc.registry.Store(registry)

	svc.server = server.NewServer(cfg.listenAddr, svc)
	svc.server.SetSoftware("dictsrv/" + Version)
	svc.server.SetServerInfo(cfg.serverInfo)
	svc.server.SetIdleTimeout(cfg.idleTimeout)
	svc.server.SetLogger(&serverLogger{logger: cfg.logger})

	return svc, nil
}

// Snapshot implements dict.Source; sessions call it once per command.
func (s *Service) Snapshot() *dict.Registry {
	return s.registry.Load()
}

// Start binds the listener and, when hot reload is enabled, begins
// watching the dictionary directory.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.started {
		return nil
	}

	if err := s.server.Start(); err != nil {
		return err
	}
	s.started = true
	s.config.logger.Info("dict server listening",
		Field{Key: "addr", Value: s.server.Addr()})

	if s.config.hotReload && s.config.dictDir != "" {
		if err := s.startWatcher(); err != nil {
			s.config.logger.Error("hot reload disabled",
				Field{Key: "error", Value: err})
		}
	}

	return nil
}

// Addr returns the server's listening address.
func (s *Service) Addr() string {
	return s.server.Addr()
}

// Stats returns server counters.
func (s *Service) Stats() map[string]interface{} {
	stats := s.server.Stats()
	registry := s.Snapshot()
	stats["databases"] = len(registry.Databases())
	stats["strategies"] = len(registry.Strategies())
	stats["version"] = Version
	return stats
}

// Reload rebuilds the registry from the configured sources and swaps it
// in atomically. Sessions running a command keep the snapshot they took;
// the next command sees the new registry.
func (s *Service) Reload() error {
	registry, err := s.buildRegistry()
	if err != nil {
		return err
	}
	s.registry.Store(registry)
	s.config.logger.Info("registry reloaded",
		Field{Key: "databases", Value: len(registry.Databases())})
	return nil
}

// Close gracefully shuts down the service: the watcher first, then the
// server (unblocking all sessions), then the Lua engine.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.watcher != nil {
		close(s.stopWatch)
		s.watcher.Close()
		s.watcherWg.Wait()
	}

	if err := s.server.Stop(); err != nil {
		return err
	}

	s.luaEngine.Close()
	return nil
}

// buildRegistry assembles a fresh registry: built-in strategies, Lua
// strategies, option-injected strategies and databases, then the
// dictionary directory.
func (s *Service) buildRegistry() (*dict.Registry, error) {
	registry := dict.NewRegistry()

	for _, strat := range dict.BuiltinStrategies() {
		if err := registry.AddStrategy(strat); err != nil {
			return nil, err
		}
	}
	for _, strat := range s.luaStrategies {
		if err := registry.AddStrategy(strat); err != nil {
			return nil, err
		}
	}
	for _, strat := range s.config.strategies {
		if err := registry.AddStrategy(strat); err != nil {
			return nil, err
		}
	}

	for _, db := range s.config.databases {
		if err := registry.AddDatabase(db); err != nil {
			return nil, err
		}
	}
	if s.config.dictDir != "" {
		databases, err := loader.LoadDir(s.config.dictDir)
		if err != nil {
			return nil, &LoadError{Source: s.config.dictDir, Err: err}
		}
		for _, db := range databases {
			if err := registry.AddDatabase(db); err != nil {
				return nil, err
			}
		}
	}

	return registry, nil
}

// startWatcher begins watching the dictionary directory. Change bursts
// are debounced so a multi-file copy triggers one rebuild.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.config.dictDir); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	s.watcherWg.Add(1)
	go s.watchLoop()
	return nil
}

func (s *Service) watchLoop() {
	defer s.watcherWg.Done()

	const debounce = 250 * time.Millisecond
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-s.stopWatch:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				pending = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.config.logger.Error("dictionary watch error",
				Field{Key: "error", Value: err})
		case <-pending:
			timer = nil
			pending = nil
			if err := s.Reload(); err != nil {
				// Keep serving the previous registry on a bad reload.
				s.config.logger.Error("registry reload failed",
					Field{Key: "error", Value: err})
			}
		}
	}
}
