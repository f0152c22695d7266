package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dictsrv/dictsrv/dict"
)

// Pseudo-headwords carrying database metadata in dictd files.
const (
	headwordShort = "00databaseshort"
	headwordInfo  = "00databaseinfo"
	headwordURL   = "00databaseurl"
)

// indexEntry is one parsed index line: a headword plus the byte range
// of its definition in the .dict file.
type indexEntry struct {
	word   string
	offset uint64
	length uint64
}

// IndexError reports a malformed line in a .index file.
type IndexError struct {
	Path string
	Line int
	Err  error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// LoadDatabase reads a dictd .index/.dict file pair into an immutable
// in-memory database. Entries are sorted by headword, which becomes the
// database's storage order. The description and long info text come
// from the 00databaseshort and 00databaseinfo pseudo-entries; pseudo
// entries themselves are not exposed as headwords.
func LoadDatabase(name, indexPath, dictPath string) (*dict.Database, error) {
	index, err := parseIndex(indexPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(dictPath)
	if err != nil {
		return nil, err
	}

	description := "Unknown"
	info := ""
	entries := make([]dict.Entry, 0, len(index))

	for _, ie := range index {
		body, err := sliceDefinition(data, ie, dictPath)
		if err != nil {
			return nil, err
		}

		switch ie.word {
		case headwordShort:
			description = metadataText(body)
		case headwordInfo:
			info = strings.Join(body, "\n")
		case headwordURL:
			// Not served by any command.
		default:
			entries = append(entries, dict.Entry{
				Headword:    ie.word,
				Definitions: [][]string{body},
			})
		}
	}

	return dict.NewDatabase(name, description, info, entries), nil
}

// parseIndex reads and sorts the tab-separated index lines.
func parseIndex(path string) ([]indexEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var index []indexEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			return nil, &IndexError{Path: path, Line: lineNo,
				Err: fmt.Errorf("expected 3 tab-separated fields, got %d", len(parts))}
		}

		offset, err := decodeBase64(parts[1])
		if err != nil {
			return nil, &IndexError{Path: path, Line: lineNo, Err: err}
		}
		length, err := decodeBase64(parts[2])
		if err != nil {
			return nil, &IndexError{Path: path, Line: lineNo, Err: err}
		}

		index = append(index, indexEntry{
			word:   parts[0],
			offset: offset,
			length: length,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(index, func(i, j int) bool {
		return index[i].word < index[j].word
	})
	return index, nil
}

// sliceDefinition extracts one definition body from the .dict payload.
func sliceDefinition(data []byte, ie indexEntry, dictPath string) ([]string, error) {
	end := ie.offset + ie.length
	if ie.offset > uint64(len(data)) || end > uint64(len(data)) {
		return nil, fmt.Errorf("%s: entry %q range [%d,%d) exceeds file size %d",
			dictPath, ie.word, ie.offset, end, len(data))
	}
	text := strings.TrimRight(string(data[ie.offset:end]), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// metadataText extracts the short description from a 00databaseshort
// body: the first non-empty line after the repeated headword.
func metadataText(body []string) string {
	for i, line := range body {
		if i == 0 && strings.HasPrefix(line, "00") {
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return "Unknown"
}

// LoadDir loads every database in dir: dictd .index files with their
// sibling .dict files, and .json databases. Database names derive from
// file basenames; directory listing order determines registration
// order, giving a stable order per process lifetime.
func LoadDir(dir string) ([]*dict.Database, error) {
	names, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var databases []*dict.Database
	for _, de := range names {
		if de.IsDir() {
			continue
		}
		base := de.Name()
		switch {
		case strings.HasSuffix(base, ".index"):
			name := strings.TrimSuffix(base, ".index")
			indexPath := filepath.Join(dir, base)
			dictPath := filepath.Join(dir, name+".dict")
			if _, err := os.Stat(dictPath); err != nil {
				return nil, fmt.Errorf("index %s has no dict file: %w", base, err)
			}
			db, err := LoadDatabase(name, indexPath, dictPath)
			if err != nil {
				return nil, err
			}
			databases = append(databases, db)
		case strings.HasSuffix(base, ".json"):
			db, err := LoadJSON(filepath.Join(dir, base))
			if err != nil {
				return nil, err
			}
			databases = append(databases, db)
		}
	}
	return databases, nil
}
