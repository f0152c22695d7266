package dict

import "testing"

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		word    string
		pattern string
		want    bool
	}{
		{"dog", "dog", true},
		{"dog", "cat", false},
		{"dormouse", "dor*", true},
		{"dormouse", "*mouse", true},
		{"dormouse", "d*se", true},
		{"dog", "d?g", true},
		{"dog", "d?t", false},
		{"dog", "[cd]og", true},
		{"fog", "[cd]og", false},
		{"anything", "*", true},
		{"", "*", false},
		{"", "", true},
		{"x", "", false},
	}

	for _, tt := range tests {
		if got := MatchPattern(tt.word, tt.pattern); got != tt.want {
			t.Errorf("MatchPattern(%q, %q) = %v, want %v", tt.word, tt.pattern, got, tt.want)
		}
	}
}

func TestMatchPattern_MalformedClassFallsBack(t *testing.T) {
	// "[" is invalid for filepath.Match; the simple matcher treats it
	// literally.
	if !MatchPattern("[dog", "[dog") {
		t.Error("literal fallback failed on exact match")
	}
	if MatchPattern("dog", "[dog") {
		t.Error("malformed class matched a different word")
	}
}

func TestMatchPatternSimple(t *testing.T) {
	tests := []struct {
		word    string
		pattern string
		want    bool
	}{
		{"dog", "dog", true},
		{"dogma", "dog*", true},
		{"bulldog", "*dog", true},
		{"dormouse", "d*se", true},
		{"dormouse", "d*z", false},
		{"dog", "d*o*g", false}, // two stars unsupported
	}

	for _, tt := range tests {
		if got := matchPatternSimple(tt.word, tt.pattern); got != tt.want {
			t.Errorf("matchPatternSimple(%q, %q) = %v, want %v", tt.word, tt.pattern, got, tt.want)
		}
	}
}
