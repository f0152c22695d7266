// Package protocol implements the wire layer of the DICT protocol
// (RFC 2229): command-line parsing and response rendering.
//
// The protocol is textual and line-oriented. Clients send one command
// per line; the server answers with a numeric status line, optionally a
// text block terminated by a line holding a single ".", and a final
// status line. This package provides the three pieces a session needs:
//
//	reader := protocol.NewReader(conn)   // newline-delimited lines
//	cmd, err := protocol.Parse(line)     // verb + argument tokens
//	writer := protocol.NewWriter(conn)   // status lines, text blocks
//
// The parser is purely syntactic. It tolerates arbitrary printable text
// in arguments, honors single/double quoting and backslash escapes, and
// passes unrecognized verbs through untouched; deciding what is
// supported belongs to the session layer.
package protocol
