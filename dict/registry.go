package dict

import "fmt"

// Registry holds the databases and strategies available to a server. It
// is built once, before connections are accepted, and is read-only
// afterwards: concurrent sessions share one registry without locking.
// Hot reloads build a fresh Registry and swap it in whole.
type Registry struct {
	databases  []*Database
	byName     map[string]*Database
	strategies []Strategy
	byStrategy map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]*Database),
		byStrategy: make(map[string]Strategy),
	}
}

// AddDatabase registers a database. Registration order is the order
// SHOW DB lists databases and the order wildcard lookups scan them.
func (r *Registry) AddDatabase(db *Database) error {
	key := Fold(db.Name())
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("database %q: %w", db.Name(), ErrDuplicateName)
	}
	r.databases = append(r.databases, db)
	r.byName[key] = db
	return nil
}

// AddStrategy registers a matching strategy.
func (r *Registry) AddStrategy(s Strategy) error {
	key := Fold(s.Name)
	if _, exists := r.byStrategy[key]; exists {
		return fmt.Errorf("strategy %q: %w", s.Name, ErrDuplicateName)
	}
	r.strategies = append(r.strategies, s)
	r.byStrategy[key] = s
	return nil
}

// Database looks up a database by name, case-insensitively.
func (r *Registry) Database(name string) (*Database, bool) {
	db, ok := r.byName[Fold(name)]
	return db, ok
}

// Databases returns all databases in registration order.
func (r *Registry) Databases() []*Database { return r.databases }

// Strategy looks up a strategy by name, case-insensitively.
func (r *Registry) Strategy(name string) (Strategy, bool) {
	s, ok := r.byStrategy[Fold(name)]
	return s, ok
}

// Strategies returns all strategies in registration order.
func (r *Registry) Strategies() []Strategy { return r.strategies }

// Snapshot implements Source for a static registry.
func (r *Registry) Snapshot() *Registry { return r }

// Source yields the registry snapshot a session should use for one
// command. A static *Registry is its own source; a hot-reloading owner
// hands out the current pointer.
type Source interface {
	Snapshot() *Registry
}
