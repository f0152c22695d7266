package protocol

import (
	"strings"
	"testing"
)

func TestWriter_StatusLines(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	if err := w.WriteStatus(StatusOK); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteStatusLine(StatusDefinitionsFollow, "%d definitions retrieved - definitions follow", 2); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "250 ok\r\n150 2 definitions retrieved - definitions follow\r\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}
}

func TestWriter_TextBlockDotStuffing(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	if err := w.WriteTextBlock([]string{"plain line", ".starts with dot", ""}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "plain line\r\n..starts with dot\r\n\r\n.\r\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}
}

func TestWriter_BufferedUntilFlush(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	w.WriteStatus(StatusOK)
	if sb.String() != "" {
		t.Errorf("wrote %q before Flush", sb.String())
	}
	w.Flush()
	if sb.String() == "" {
		t.Error("nothing written after Flush")
	}
}

func TestReader_ReadLine(t *testing.T) {
	r := NewReader(strings.NewReader("DEFINE web1 cat\r\nQUIT\nfinal"))

	for _, want := range []string{"DEFINE web1 cat", "QUIT", "final"} {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != want {
			t.Errorf("ReadLine = %q, want %q", got, want)
		}
	}
}

func TestReader_EOF(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	if _, err := r.ReadLine(); err == nil {
		t.Error("expected error on empty stream")
	}
}

func TestStatusText_KnownAndUnknown(t *testing.T) {
	if got := StatusText(StatusNoMatch); got != "no match" {
		t.Errorf("StatusText(552) = %q", got)
	}
	if got := StatusText(999); got != "status 999" {
		t.Errorf("StatusText(999) = %q", got)
	}
}
