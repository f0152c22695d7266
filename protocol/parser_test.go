package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_Verbs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{
			name: "define",
			line: "DEFINE web1 cat",
			want: Command{Name: "DEFINE", Args: []string{"web1", "cat"}},
		},
		{
			name: "lowercase verb is folded",
			line: "define web1 cat",
			want: Command{Name: "DEFINE", Args: []string{"web1", "cat"}},
		},
		{
			name: "match",
			line: "MATCH foldoc regex \"s.si\"",
			want: Command{Name: "MATCH", Args: []string{"foldoc", "regex", "s.si"}},
		},
		{
			name: "argument case is preserved",
			line: "DEFINE Web1 CaT",
			want: Command{Name: "DEFINE", Args: []string{"Web1", "CaT"}},
		},
		{
			name: "extra whitespace",
			line: "SHOW    DATABASES",
			want: Command{Name: "SHOW", Args: []string{"DATABASES"}},
		},
		{
			name: "unknown verb passes through",
			line: "FROB xyz",
			want: Command{Name: "FROB", Args: []string{"xyz"}},
		},
		{
			name: "bare verb",
			line: "QUIT",
			want: Command{Name: "QUIT", Args: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.line, err)
			}
			if got.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if !reflect.DeepEqual(got.Args, tt.want.Args) {
				t.Errorf("Args = %v, want %v", got.Args, tt.want.Args)
			}
		})
	}
}

func TestParse_Quoting(t *testing.T) {
	tests := []struct {
		line string
		args []string
	}{
		{`DEFINE web1 "ice cream"`, []string{"web1", "ice cream"}},
		{`DEFINE web1 'ice cream'`, []string{"web1", "ice cream"}},
		{`DEFINE web1 ice\ cream`, []string{"web1", "ice cream"}},
		{`DEFINE web1 "embedded \" quote"`, []string{"web1", `embedded " quote`}},
		{`MATCH "multi word db" exact dog`, []string{"multi word db", "exact", "dog"}},
		{`DEFINE web1 ""`, []string{"web1", ""}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.line, err)
		}
		if !reflect.DeepEqual(got.Args, tt.args) {
			t.Errorf("Parse(%q) args = %#v, want %#v", tt.line, got.Args, tt.args)
		}
	}
}

func TestParse_EmptyLine(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		cmd, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		if !cmd.Empty() {
			t.Errorf("Parse(%q) = %+v, want empty command", line, cmd)
		}
	}
}

func TestParse_UnterminatedQuote(t *testing.T) {
	for _, line := range []string{`DEFINE web1 "cat`, `DEFINE web1 'cat`, `DEFINE web1 cat\`} {
		_, err := Parse(line)
		if !errors.Is(err, ErrUnterminatedQuote) {
			t.Errorf("Parse(%q) err = %v, want ErrUnterminatedQuote", line, err)
		}
	}
}
