package dict

import "strings"

// Entry is a single headword with one or more definition bodies.
// Entries are immutable once loaded into a Database.
type Entry struct {
	Headword string

	// Definitions holds one or more definition bodies, each an ordered
	// sequence of text lines.
	Definitions [][]string
}

// Database is a named, ordered collection of entries.
type Database struct {
	name        string
	description string
	info        string

	entries []Entry
	index   map[string][]int // folded headword -> entry positions
}

// NewDatabase creates a database from the given entries. Entry order is
// preserved as storage order; the headword index is folded for
// case-insensitive DEFINE lookups.
func NewDatabase(name, description, info string, entries []Entry) *Database {
	db := &Database{
		name:        name,
		description: description,
		info:        info,
		entries:     entries,
		index:       make(map[string][]int, len(entries)),
	}
	for i, e := range entries {
		key := Fold(e.Headword)
		db.index[key] = append(db.index[key], i)
	}
	return db
}

// Name returns the database's unique name.
func (db *Database) Name() string { return db.name }

// Description returns the short human-readable description.
func (db *Database) Description() string { return db.description }

// Info returns the long free-text description served by SHOW INFO.
func (db *Database) Info() string { return db.info }

// Len returns the number of entries.
func (db *Database) Len() int { return len(db.entries) }

// Entries returns the entries in storage order. Callers must not mutate
// the returned slice.
func (db *Database) Entries() []Entry { return db.entries }

// Find returns all entries whose headword equals word under case folding,
// in storage order.
func (db *Database) Find(word string) []Entry {
	positions := db.index[Fold(word)]
	if len(positions) == 0 {
		return nil
	}
	found := make([]Entry, 0, len(positions))
	for _, i := range positions {
		found = append(found, db.entries[i])
	}
	return found
}

// MatchResult pairs a database name with a matched headword.
type MatchResult struct {
	Database string
	Headword string
}

// DefineResult pairs a database with one defined entry.
type DefineResult struct {
	Database    string
	Description string
	Entry       Entry
}

// Fold normalizes a headword or query for comparison. DICT name and word
// comparisons are case-insensitive.
func Fold(s string) string {
	return strings.ToLower(s)
}
