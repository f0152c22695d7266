package dict

import "strings"

// Predicate reports whether a stored headword matches a query. Both
// arguments are passed as-is; predicates are expected to fold case
// themselves so custom strategies keep full control over comparison.
type Predicate func(headword, query string) bool

// Strategy is a named matching predicate used by MATCH. Strategies are
// immutable after registration.
type Strategy struct {
	Name        string
	Description string
	Match       Predicate
}

// BuiltinStrategies returns the strategies every server registers at
// startup, in their canonical listing order.
func BuiltinStrategies() []Strategy {
	return []Strategy{
		{
			Name:        "exact",
			Description: "Match headwords exactly",
			Match: func(headword, query string) bool {
				return Fold(headword) == Fold(query)
			},
		},
		{
			Name:        "prefix",
			Description: "Match prefixes",
			Match: func(headword, query string) bool {
				return strings.HasPrefix(Fold(headword), Fold(query))
			},
		},
		{
			Name:        "suffix",
			Description: "Match suffixes",
			Match: func(headword, query string) bool {
				return strings.HasSuffix(Fold(headword), Fold(query))
			},
		},
		{
			Name:        "substring",
			Description: "Match substring occurring anywhere in a headword",
			Match: func(headword, query string) bool {
				return strings.Contains(Fold(headword), Fold(query))
			},
		},
		{
			Name:        "glob",
			Description: "Match headwords against a glob pattern",
			Match: func(headword, query string) bool {
				return MatchPattern(Fold(headword), Fold(query))
			},
		},
	}
}
