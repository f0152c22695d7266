// Package loader builds in-memory dictionary databases from on-disk
// files before the server starts accepting connections.
//
// Two formats are supported: dict.org .index/.dict file pairs (the
// format dictd and most freely distributed dictionaries use) and a
// small JSON format convenient for hand-authored databases. Loaded
// databases are immutable; reloading means loading again and swapping
// the registry.
package loader
