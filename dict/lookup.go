package dict

import "math/rand"

// Database selectors with special meaning in DEFINE and MATCH.
const (
	// SelectorAll scans every database in registration order.
	SelectorAll = "*"

	// SelectorFirst would stop at the first database with a match. It
	// is recognized but unimplemented; lookups reject it with
	// ErrNotImplemented rather than treating it like SelectorAll.
	SelectorFirst = "!"
)

// Define returns the definitions for word. A named selector consults only
// that database. SelectorAll scans databases in registration order and
// returns the entries of the first database containing the word; later
// databases are not consulted even if they also define it. An empty
// result with a nil error means the word was not found.
func (r *Registry) Define(selector, word string) ([]DefineResult, error) {
	databases, err := r.selectDatabases(selector)
	if err != nil {
		return nil, err
	}

	for _, db := range databases {
		entries := db.Find(word)
		if len(entries) == 0 {
			continue
		}
		results := make([]DefineResult, 0, len(entries))
		for _, e := range entries {
			results = append(results, DefineResult{
				Database:    db.Name(),
				Description: db.Description(),
				Entry:       e,
			})
		}
		// TODO: aggregate across all databases when selector is "*",
		// the way Match does; for now only the first database with a
		// hit is reported.
		return results, nil
	}
	return nil, nil
}

// Match returns the headwords matching word under the named strategy.
// Unlike Define, SelectorAll aggregates matches across every database.
// Results are grouped by database in registration order, headwords in
// storage order within each database.
func (r *Registry) Match(selector, strategyName, word string) ([]MatchResult, error) {
	strategy, ok := r.Strategy(strategyName)
	if !ok {
		return nil, &UnknownStrategyError{Name: strategyName}
	}

	databases, err := r.selectDatabases(selector)
	if err != nil {
		return nil, err
	}

	var results []MatchResult
	for _, db := range databases {
		for _, e := range db.Entries() {
			if strategy.Match(e.Headword, word) {
				results = append(results, MatchResult{
					Database: db.Name(),
					Headword: e.Headword,
				})
			}
		}
	}
	return results, nil
}

// Random returns one uniformly chosen definition: first a database
// weighted equally among those with at least one entry, then an entry
// within it. The second return is false when no database holds any
// entries.
func (r *Registry) Random() (DefineResult, bool) {
	var populated []*Database
	for _, db := range r.databases {
		if db.Len() > 0 {
			populated = append(populated, db)
		}
	}
	if len(populated) == 0 {
		return DefineResult{}, false
	}

	db := populated[rand.Intn(len(populated))]
	e := db.Entries()[rand.Intn(db.Len())]
	return DefineResult{
		Database:    db.Name(),
		Description: db.Description(),
		Entry:       e,
	}, true
}

// selectDatabases resolves a selector to the databases a lookup scans.
func (r *Registry) selectDatabases(selector string) ([]*Database, error) {
	switch selector {
	case SelectorAll:
		return r.databases, nil
	case SelectorFirst:
		return nil, ErrNotImplemented
	default:
		db, ok := r.Database(selector)
		if !ok {
			return nil, &UnknownDatabaseError{Name: selector}
		}
		return []*Database{db}, nil
	}
}
