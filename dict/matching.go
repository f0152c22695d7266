package dict

import (
	"path/filepath"
	"strings"
)

// MatchPattern matches a headword against a glob pattern supporting the
// usual "*", "?" and character-class metacharacters.
func MatchPattern(word, pattern string) bool {
	if pattern == "" {
		return word == ""
	}
	if pattern == "*" {
		return word != ""
	}

	matched, err := filepath.Match(pattern, word)
	if err != nil {
		// Malformed class, fall back to single-wildcard matching.
		return matchPatternSimple(word, pattern)
	}
	return matched
}

// matchPatternSimple handles patterns with at most one "*" without regex
// machinery: exact, prefix, suffix and single-gap substring forms.
func matchPatternSimple(word, pattern string) bool {
	if word == pattern {
		return true
	}

	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(word, pattern[:len(pattern)-1])
	}
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(word, pattern[1:])
	}

	if star := strings.IndexByte(pattern, '*'); star != -1 {
		if strings.LastIndexByte(pattern, '*') != star {
			return false
		}
		return strings.HasPrefix(word, pattern[:star]) && strings.HasSuffix(word, pattern[star+1:])
	}

	return false
}
