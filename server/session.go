package server

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/dictsrv/dictsrv/dict"
	"github.com/dictsrv/dictsrv/protocol"
)

// sessionState tracks where a session is in its lifecycle.
type sessionState int

const (
	// stateActive accepts and executes commands.
	stateActive sessionState = iota
	// stateClosing stops processing; the connection is about to close.
	// Bytes still in flight from the peer are never executed.
	stateClosing
)

// Session is the per-connection protocol state machine. It owns its
// transient state exclusively and shares nothing with other sessions
// beyond the read-only registry snapshots it takes per command.
type Session struct {
	conn   net.Conn
	reader *protocol.Reader
	writer *protocol.Writer
	server *Server

	state sessionState

	ctx    context.Context
	cancel context.CancelFunc
}

// Close terminates the session, unblocking any pending read or write.
func (s *Session) Close() {
	s.cancel()
	s.conn.Close()
	s.server.sessions.Delete(s.conn)
}

// run drives the read-parse-execute-write loop until the session leaves
// the active state.
func (s *Session) run() {
	defer s.server.wg.Done()
	defer s.Close()

	if err := s.writeBanner(); err != nil {
		return
	}

	for s.state == stateActive {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		if s.server.idleTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.server.idleTimeout))
		}

		line, err := s.reader.ReadLine()
		if err != nil {
			if err != io.EOF && s.ctx.Err() == nil {
				s.server.logger.Debug("read failed",
					"remote", s.conn.RemoteAddr().String(), "error", err)
			}
			s.state = stateClosing
			return
		}

		s.execute(line)
	}
}

// execute runs one command cycle. Responses are buffered and flushed
// once, so a handler failure never leaves a half-written response.
func (s *Session) execute(line string) {
	cmd, err := protocol.Parse(line)
	if err != nil {
		s.server.countError()
		s.writer.WriteStatus(protocol.StatusIllegalParameters)
		s.writer.Flush()
		return
	}
	if cmd.Empty() {
		// Blank lines get no response at all.
		return
	}

	s.server.countCommand()
	s.server.logger.Debug("query",
		"remote", s.conn.RemoteAddr().String(), "verb", cmd.Name)

	s.dispatch(cmd)

	if err := s.writer.Flush(); err != nil {
		s.state = stateClosing
	}
}

// dispatch validates the verb against the supported command set and
// invokes the handler. Recognized-but-unimplemented verbs answer 502;
// everything else unknown answers 500.
func (s *Session) dispatch(cmd protocol.Command) {
	switch cmd.Name {
	case "DEFINE":
		s.handleDefine(cmd)
	case "MATCH":
		s.handleMatch(cmd)
	case "SHOW":
		s.handleShow(cmd)
	case "HELP":
		s.writeHelp()
	case "XRANDOM":
		s.handleRandom(cmd)
	case "QUIT":
		s.writer.WriteStatus(protocol.StatusClosing)
		s.state = stateClosing
	case "OPTION", "STATUS", "CLIENT", "AUTH":
		// Known DICT verbs outside the implemented subset.
		s.server.countError()
		s.writer.WriteStatusLine(protocol.StatusCommandNotImplemented,
			"%s not implemented", cmd.Name)
	default:
		s.server.countError()
		s.writer.WriteStatus(protocol.StatusUnknownCommand)
	}
}

// handleDefine implements DEFINE database word.
func (s *Session) handleDefine(cmd protocol.Command) {
	if len(cmd.Args) != 2 {
		s.writer.WriteStatus(protocol.StatusIllegalParameters)
		return
	}
	selector, word := cmd.Args[0], cmd.Args[1]

	registry := s.server.source.Snapshot()
	results, err := registry.Define(selector, word)
	if err != nil {
		s.writeLookupError(err)
		return
	}
	if len(results) == 0 {
		s.writer.WriteStatus(protocol.StatusNoMatch)
		return
	}
	writeDefinitions(s.writer, results)
}

// handleMatch implements MATCH database strategy word.
func (s *Session) handleMatch(cmd protocol.Command) {
	if len(cmd.Args) != 3 {
		s.writer.WriteStatus(protocol.StatusIllegalParameters)
		return
	}
	selector, strategy, word := cmd.Args[0], cmd.Args[1], cmd.Args[2]

	registry := s.server.source.Snapshot()
	results, err := registry.Match(selector, strategy, word)
	if err != nil {
		s.writeLookupError(err)
		return
	}
	if len(results) == 0 {
		s.writer.WriteStatus(protocol.StatusNoMatch)
		return
	}
	writeMatches(s.writer, results)
}

// handleShow implements the SHOW subcommands.
func (s *Session) handleShow(cmd protocol.Command) {
	if len(cmd.Args) == 0 {
		s.writer.WriteStatus(protocol.StatusIllegalParameters)
		return
	}

	registry := s.server.source.Snapshot()

	switch sub := dict.Fold(cmd.Args[0]); sub {
	case "db", "databases":
		if len(cmd.Args) != 1 {
			s.writer.WriteStatus(protocol.StatusIllegalParameters)
			return
		}
		writeDatabaseList(s.writer, registry.Databases())
	case "strat", "strategies":
		if len(cmd.Args) != 1 {
			s.writer.WriteStatus(protocol.StatusIllegalParameters)
			return
		}
		writeStrategyList(s.writer, registry.Strategies())
	case "info":
		if len(cmd.Args) != 2 {
			s.writer.WriteStatus(protocol.StatusIllegalParameters)
			return
		}
		db, ok := registry.Database(cmd.Args[1])
		if !ok {
			s.writer.WriteStatus(protocol.StatusInvalidDatabase)
			return
		}
		writeDatabaseInfo(s.writer, db)
	case "server":
		if len(cmd.Args) != 1 {
			s.writer.WriteStatus(protocol.StatusIllegalParameters)
			return
		}
		writeServerInfo(s.writer, s.server.serverInfo)
	default:
		s.writer.WriteStatus(protocol.StatusIllegalParameters)
	}
}

// handleRandom implements the XRANDOM extension.
func (s *Session) handleRandom(cmd protocol.Command) {
	if len(cmd.Args) != 0 {
		s.writer.WriteStatus(protocol.StatusIllegalParameters)
		return
	}

	registry := s.server.source.Snapshot()
	result, ok := registry.Random()
	if !ok {
		s.writer.WriteStatus(protocol.StatusNoDatabasesPresent)
		return
	}
	writeDefinitions(s.writer, []dict.DefineResult{result})
}

// writeBanner sends the 220 greeting.
func (s *Session) writeBanner() error {
	s.writer.WriteStatusLine(protocol.StatusBanner, "%s %s ready",
		s.server.hostname, s.server.software)
	return s.writer.Flush()
}

// writeLookupError maps the lookup error taxonomy onto status codes.
func (s *Session) writeLookupError(err error) {
	s.server.countError()
	code, text := lookupStatus(err)
	s.writer.WriteStatusLine(code, "%s", text)
}

// writeHelp sends the static command reference.
func (s *Session) writeHelp() {
	s.writer.WriteStatus(protocol.StatusHelpFollows)
	s.writer.WriteTextBlock(helpLines)
	s.writer.WriteStatus(protocol.StatusOK)
}
