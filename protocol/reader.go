package protocol

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxLineLength bounds a single command line including the terminator
// (RFC 2229 section 2.3 caps command lines at 1024 octets).
const MaxLineLength = 1024

// ErrLineTooLong indicates a command line exceeding MaxLineLength.
var ErrLineTooLong = errors.New("command line too long")

// Reader reads newline-delimited command lines from a client stream.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a command-line reader for a client connection.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		br: bufio.NewReaderSize(r, MaxLineLength),
	}
}

// ReadLine reads the next command line, stripping the trailing LF or
// CRLF. It blocks until a full line arrives, the peer closes the
// connection (io.EOF), or the line exceeds MaxLineLength.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// Final unterminated line before close, still a command.
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	if len(line) > MaxLineLength {
		return "", ErrLineTooLong
	}
	return strings.TrimRight(line, "\r\n"), nil
}
