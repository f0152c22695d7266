package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CRLF is the DICT protocol line terminator.
const CRLF = "\r\n"

// Writer renders DICT protocol responses: status lines, text payload
// lines and the "." line terminating a text block. Output is buffered;
// callers flush once per command so a response is written atomically.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a DICT protocol writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		bw: bufio.NewWriter(w),
	}
}

// WriteStatus writes a status line with the code's default text.
func (w *Writer) WriteStatus(code int) error {
	return w.WriteStatusLine(code, StatusText(code))
}

// WriteStatusLine writes a status line with caller-supplied text.
func (w *Writer) WriteStatusLine(code int, format string, args ...interface{}) error {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	if _, err := fmt.Fprintf(w.bw, "%03d %s%s", code, text, CRLF); err != nil {
		return err
	}
	return nil
}

// WriteTextLine writes one payload line of a text block. A leading "."
// is doubled so the line cannot be mistaken for the block terminator
// (RFC 2229 section 2.4.1).
func (w *Writer) WriteTextLine(line string) error {
	if strings.HasPrefix(line, ".") {
		line = "." + line
	}
	if _, err := w.bw.WriteString(line); err != nil {
		return err
	}
	_, err := w.bw.WriteString(CRLF)
	return err
}

// WriteTextBlock writes each line of a text block followed by the "."
// terminator line.
func (w *Writer) WriteTextBlock(lines []string) error {
	for _, line := range lines {
		if err := w.WriteTextLine(line); err != nil {
			return err
		}
	}
	return w.WriteEndOfBlock()
}

// WriteEndOfBlock writes the "." line that terminates a text block.
func (w *Writer) WriteEndOfBlock() error {
	_, err := w.bw.WriteString("." + CRLF)
	return err
}

// Flush flushes any buffered response data to the connection.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Reset discards buffered state and switches to a new destination.
func (w *Writer) Reset(writer io.Writer) {
	w.bw.Reset(writer)
}
