package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/dictsrv/dictsrv/dict"
	"github.com/dictsrv/dictsrv/protocol"
)

// Logger is the minimal logging interface the server needs. The root
// package adapts its own Logger onto this one.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// nopLogger discards everything; used until SetLogger is called.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Server accepts DICT protocol connections and runs one session per
// connection. Sessions share a read-only registry snapshot obtained
// from the Source; the server imposes no ordering between them.
type Server struct {
	source dict.Source

	// Server configuration
	addr        string
	software    string
	hostname    string
	serverInfo  string
	idleTimeout time.Duration
	logger      Logger

	// Connection management
	listener net.Listener
	sessions sync.Map // map[net.Conn]*Session

	// Control
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	mu           sync.Mutex
	connCount    int64
	commandCount int64
	errorCount   int64
}

// NewServer creates a DICT protocol server serving lookups against the
// registry snapshots yielded by source.
func NewServer(addr string, source dict.Source) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	return &Server{
		source:   source,
		addr:     addr,
		software: "dictsrv",
		hostname: hostname,
		logger:   nopLogger{},
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetSoftware sets the software identification used in the 220 banner.
func (s *Server) SetSoftware(software string) {
	s.software = software
}

// SetServerInfo sets the site-specific text served by SHOW SERVER.
func (s *Server) SetServerInfo(text string) {
	s.serverInfo = text
}

// SetIdleTimeout closes sessions idle for longer than d. Zero disables
// the timeout.
func (s *Server) SetIdleTimeout(d time.Duration) {
	s.idleTimeout = d
}

// SetLogger sets the connection and query logger.
func (s *Server) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Start binds the listener and begins accepting connections.
func (s *Server) Start() error {
	var err error
	s.listener, err = net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.wg.Add(1)
	go s.acceptConnections()

	return nil
}

// Stop stops the server, unblocking every session's pending read or
// write, and waits until all sessions have terminated.
func (s *Server) Stop() error {
	s.cancel()

	if s.listener != nil {
		s.listener.Close()
	}

	s.sessions.Range(func(key, value interface{}) bool {
		if sess, ok := value.(*Session); ok {
			sess.Close()
		}
		return true
	})

	s.wg.Wait()
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stats returns server counters.
func (s *Server) Stats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionCount := 0
	s.sessions.Range(func(key, value interface{}) bool {
		sessionCount++
		return true
	})

	return map[string]interface{}{
		"active_sessions":   sessionCount,
		"total_connections": s.connCount,
		"total_commands":    s.commandCount,
		"total_errors":      s.errorCount,
	}
}

// acceptConnections accepts client connections until the server stops.
func (s *Server) acceptConnections() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		conn, err := s.listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}

		s.handleNewSession(conn)
	}
}

// handleNewSession starts a session goroutine for a fresh connection.
func (s *Server) handleNewSession(conn net.Conn) {
	s.mu.Lock()
	s.connCount++
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(s.ctx)
	sess := &Session{
		conn:   conn,
		reader: protocol.NewReader(conn),
		writer: protocol.NewWriter(conn),
		server: s,
		state:  stateActive,
		ctx:    ctx,
		cancel: cancel,
	}

	s.sessions.Store(conn, sess)
	s.logger.Info("client connected", "remote", conn.RemoteAddr().String())

	s.wg.Add(1)
	go sess.run()
}

func (s *Server) countCommand() {
	s.mu.Lock()
	s.commandCount++
	s.mu.Unlock()
}

func (s *Server) countError() {
	s.mu.Lock()
	s.errorCount++
	s.mu.Unlock()
}
