package dict

import (
	"errors"
	"testing"
)

func testEntries(words ...string) []Entry {
	entries := make([]Entry, 0, len(words))
	for _, w := range words {
		entries = append(entries, Entry{
			Headword:    w,
			Definitions: [][]string{{"definition of " + w}},
		})
	}
	return entries
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, s := range BuiltinStrategies() {
		if err := r.AddStrategy(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.AddDatabase(NewDatabase("web1", "First dictionary", "", testEntries("cat", "dog", "dormouse"))); err != nil {
		t.Fatal(err)
	}
	if err := r.AddDatabase(NewDatabase("jargon", "Second dictionary", "", testEntries("dog", "hacker"))); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRegistry_DatabaseLookupIsCaseInsensitive(t *testing.T) {
	r := testRegistry(t)

	for _, name := range []string{"web1", "WEB1", "Web1"} {
		db, ok := r.Database(name)
		if !ok {
			t.Fatalf("Database(%q) not found", name)
		}
		if db.Name() != "web1" {
			t.Errorf("Database(%q).Name() = %q", name, db.Name())
		}
	}

	if _, ok := r.Database("nope"); ok {
		t.Error("Database(nope) unexpectedly found")
	}
}

func TestRegistry_DuplicateNamesRejected(t *testing.T) {
	r := testRegistry(t)

	err := r.AddDatabase(NewDatabase("WEB1", "shadow", "", nil))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("AddDatabase duplicate err = %v, want ErrDuplicateName", err)
	}

	err = r.AddStrategy(Strategy{Name: "Exact", Description: "shadow", Match: func(string, string) bool { return false }})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("AddStrategy duplicate err = %v, want ErrDuplicateName", err)
	}
}

func TestRegistry_ListOrderIsStable(t *testing.T) {
	r := testRegistry(t)

	for i := 0; i < 3; i++ {
		dbs := r.Databases()
		if len(dbs) != 2 || dbs[0].Name() != "web1" || dbs[1].Name() != "jargon" {
			t.Fatalf("Databases() order changed: %v", dbNames(dbs))
		}
	}

	strategies := r.Strategies()
	if len(strategies) == 0 || strategies[0].Name != "exact" {
		t.Errorf("Strategies() first = %v, want exact", strategies)
	}
}

func TestRegistry_StrategyLookupIsCaseInsensitive(t *testing.T) {
	r := testRegistry(t)
	if _, ok := r.Strategy("EXACT"); !ok {
		t.Error("Strategy(EXACT) not found")
	}
}

func TestDatabase_FindIsCaseInsensitive(t *testing.T) {
	db := NewDatabase("d", "", "", testEntries("Cat"))
	for _, word := range []string{"cat", "CAT", "Cat"} {
		if got := db.Find(word); len(got) != 1 {
			t.Errorf("Find(%q) returned %d entries, want 1", word, len(got))
		}
	}
}

func TestDatabase_EmptyIsValid(t *testing.T) {
	db := NewDatabase("empty", "No entries", "", nil)
	if db.Len() != 0 {
		t.Errorf("Len = %d", db.Len())
	}
	if got := db.Find("anything"); got != nil {
		t.Errorf("Find on empty database = %v", got)
	}
}

func dbNames(dbs []*Database) []string {
	names := make([]string, len(dbs))
	for i, db := range dbs {
		names[i] = db.Name()
	}
	return names
}
