// Package dict holds the in-memory dictionary model: databases of
// headword entries, named matching strategies, and the registry that
// lookups run against.
//
// A Registry is built once at startup from loaded databases and the
// strategy set, and is read-only afterwards. DEFINE, MATCH and random
// lookups are pure reads, so any number of concurrent sessions may share
// one registry without synchronization. Replacing dictionary data means
// building a new Registry and swapping the Source pointer, never
// mutating a live one.
//
// Lookup semantics follow the DICT protocol conventions:
//   - Name and headword comparisons are case-insensitive
//   - "*" selects all databases; "!" is recognized but unimplemented
//   - MATCH results keep database registration order and entry storage
//     order, they are never re-sorted
package dict
