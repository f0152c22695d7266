package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dictsrv/dictsrv/dict"
)

// LoadJSON reads a hand-authored JSON database:
//
//	{
//	  "name": "web1",
//	  "description": "An example dictionary",
//	  "info": "Longer free-form text served by SHOW INFO.",
//	  "entries": [
//	    {"headword": "cat", "definitions": ["a feline"]},
//	    {"headword": "dog", "definitions": [["a canine", "best friend"]]}
//	  ]
//	}
//
// A definition may be a plain string (one single-line body) or an array
// of lines. Entry order in the file is the database's storage order.
func LoadJSON(path string) (*dict.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: invalid JSON", path)
	}

	root := gjson.ParseBytes(data)

	name := root.Get("name").String()
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	description := root.Get("description").String()
	if description == "" {
		description = "Unknown"
	}
	info := root.Get("info").String()

	var entries []dict.Entry
	var parseErr error
	root.Get("entries").ForEach(func(_, entry gjson.Result) bool {
		headword := entry.Get("headword").String()
		if headword == "" {
			parseErr = fmt.Errorf("%s: entry without headword", path)
			return false
		}

		var definitions [][]string
		entry.Get("definitions").ForEach(func(_, def gjson.Result) bool {
			if def.IsArray() {
				var lines []string
				def.ForEach(func(_, line gjson.Result) bool {
					lines = append(lines, line.String())
					return true
				})
				definitions = append(definitions, lines)
			} else {
				definitions = append(definitions, []string{def.String()})
			}
			return true
		})
		if len(definitions) == 0 {
			parseErr = fmt.Errorf("%s: entry %q has no definitions", path, headword)
			return false
		}

		entries = append(entries, dict.Entry{
			Headword:    headword,
			Definitions: definitions,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return dict.NewDatabase(name, description, info, entries), nil
}
