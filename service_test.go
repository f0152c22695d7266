package dictsrv

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dictsrv/dictsrv/dict"
)

func testDatabase(name string, words ...string) *dict.Database {
	entries := make([]dict.Entry, 0, len(words))
	for _, w := range words {
		entries = append(entries, dict.Entry{
			Headword:    w,
			Definitions: [][]string{{w, "   definition of " + w}},
		})
	}
	return dict.NewDatabase(name, "Test dictionary "+name, "", entries)
}

func TestNew_InvalidOptions(t *testing.T) {
	cases := []struct {
		name string
		opt  Option
	}{
		{"empty listen addr", WithListenAddr("")},
		{"nil database", WithDatabase(nil)},
		{"nil logger", WithLogger(nil)},
		{"negative idle timeout", WithIdleTimeout(-time.Second)},
		{"strategy without predicate", WithStrategy(dict.Strategy{Name: "x"})},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNew_RegistryFromOptions(t *testing.T) {
	svc, err := New(
		WithListenAddr("127.0.0.1:0"),
		WithDatabase(testDatabase("web1", "cat", "dog")),
		WithStrategy(dict.Strategy{
			Name:        "anagram",
			Description: "headwords that are anagrams of the query",
			Match:       func(headword, query string) bool { return len(headword) == len(query) },
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	registry := svc.Snapshot()
	if _, ok := registry.Database("web1"); !ok {
		t.Error("option database missing from registry")
	}
	if _, ok := registry.Strategy("anagram"); !ok {
		t.Error("option strategy missing from registry")
	}
	// Builtins are always present.
	for _, name := range []string{"exact", "prefix", "suffix", "substring", "glob"} {
		if _, ok := registry.Strategy(name); !ok {
			t.Errorf("builtin strategy %s missing", name)
		}
	}
}

func TestNew_BadDictDir(t *testing.T) {
	_, err := New(WithDictDir("/nonexistent/dicts"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want LoadError", err)
	}
	if le.Source != "/nonexistent/dicts" {
		t.Errorf("Source = %q", le.Source)
	}
}

func TestService_EndToEnd(t *testing.T) {
	svc, err := New(
		WithListenAddr("127.0.0.1:0"),
		WithDatabase(testDatabase("web1", "cat", "dog")),
		WithServerInfo("service test"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	conn, err := net.DialTimeout("tcp", svc.Addr(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	reader := bufio.NewReader(conn)

	readLine := func() string {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return strings.TrimRight(line, "\r\n")
	}

	if banner := readLine(); !strings.HasPrefix(banner, "220 ") {
		t.Fatalf("banner = %q", banner)
	}

	fmt.Fprintf(conn, "DEFINE web1 cat\r\n")
	if line := readLine(); !strings.HasPrefix(line, "150 1 ") {
		t.Fatalf("got %q", line)
	}
	if line := readLine(); !strings.HasPrefix(line, "151 ") {
		t.Fatalf("got %q", line)
	}
	for readLine() != "." {
	}
	if line := readLine(); !strings.HasPrefix(line, "250") {
		t.Fatalf("got %q", line)
	}

	fmt.Fprintf(conn, "QUIT\r\n")
	if line := readLine(); !strings.HasPrefix(line, "221") {
		t.Fatalf("got %q", line)
	}
}

func TestService_Reload(t *testing.T) {
	dir := t.TempDir()
	writeJSONDB(t, dir, "web1", "cat")

	svc, err := New(WithListenAddr("127.0.0.1:0"), WithDictDir(dir))
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	before := svc.Snapshot()
	if len(before.Databases()) != 1 {
		t.Fatalf("databases = %d, want 1", len(before.Databases()))
	}

	writeJSONDB(t, dir, "jargon", "hacker")
	if err := svc.Reload(); err != nil {
		t.Fatal(err)
	}

	after := svc.Snapshot()
	if len(after.Databases()) != 2 {
		t.Errorf("databases after reload = %d, want 2", len(after.Databases()))
	}
	// The old snapshot is untouched; sessions holding it keep a
	// consistent view.
	if len(before.Databases()) != 1 {
		t.Errorf("old snapshot mutated, databases = %d", len(before.Databases()))
	}
}

func TestService_ReloadFailureKeepsRegistry(t *testing.T) {
	dir := t.TempDir()
	writeJSONDB(t, dir, "web1", "cat")

	svc, err := New(WithListenAddr("127.0.0.1:0"), WithDictDir(dir))
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	before := svc.Snapshot()

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reload(); err == nil {
		t.Fatal("broken database accepted by Reload")
	}

	if svc.Snapshot() != before {
		t.Error("failed reload swapped the registry")
	}
}

func TestService_LuaStrategyDir(t *testing.T) {
	dir := t.TempDir()
	script := `
description = "query read backwards"
function match(headword, query)
  return headword == query:reverse()
end
`
	if err := os.WriteFile(filepath.Join(dir, "reverse.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := New(
		WithListenAddr("127.0.0.1:0"),
		WithStrategyDir(dir),
		WithDatabase(testDatabase("web1", "drow")),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	registry := svc.Snapshot()
	if _, ok := registry.Strategy("reverse"); !ok {
		t.Fatal("Lua strategy missing from registry")
	}

	results, err := registry.Match("web1", "reverse", "word")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Headword != "drow" {
		t.Errorf("results = %+v", results)
	}
}

func TestService_CloseThenStart(t *testing.T) {
	svc, err := New(WithListenAddr("127.0.0.1:0"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Close(); err != nil {
		t.Fatal(err)
	}
	// Close is idempotent.
	if err := svc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := svc.Start(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Start after Close err = %v, want ErrClosed", err)
	}
}

func TestService_Stats(t *testing.T) {
	svc, err := New(
		WithListenAddr("127.0.0.1:0"),
		WithDatabase(testDatabase("web1", "cat")),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	stats := svc.Stats()
	if got := stats["databases"].(int); got != 1 {
		t.Errorf("databases = %d", got)
	}
	if stats["version"] != Version {
		t.Errorf("version = %v", stats["version"])
	}
}

func TestService_HotReload(t *testing.T) {
	dir := t.TempDir()
	writeJSONDB(t, dir, "web1", "cat")

	svc, err := New(
		WithListenAddr("127.0.0.1:0"),
		WithDictDir(dir),
		WithHotReload(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	writeJSONDB(t, dir, "jargon", "hacker")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(svc.Snapshot().Databases()) == 2 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Errorf("watcher never picked up the new database, have %d",
		len(svc.Snapshot().Databases()))
}

func writeJSONDB(t *testing.T, dir, name string, words ...string) {
	t.Helper()
	var entries []string
	for _, w := range words {
		entries = append(entries,
			fmt.Sprintf(`{"headword": %q, "definitions": [%q]}`, w, "definition of "+w))
	}
	payload := fmt.Sprintf(`{"description": "Test dictionary %s", "entries": [%s]}`,
		name, strings.Join(entries, ", "))
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
}
