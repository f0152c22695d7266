package loader

import "fmt"

// decodeBase64 decodes dictd's base64 number encoding used for offsets
// and lengths in .index files. The alphabet is A-Z, a-z, 0-9, "+", "/"
// mapping to 0..63, most significant digit first. This is a positional
// number encoding, not RFC 4648 data encoding, so the standard
// encoding/base64 package does not apply.
func decodeBase64(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty base64 number")
	}

	var n uint64
	for _, ch := range s {
		var digit uint64
		switch {
		case ch >= 'A' && ch <= 'Z':
			digit = uint64(ch - 'A')
		case ch >= 'a' && ch <= 'z':
			digit = uint64(ch-'a') + 26
		case ch >= '0' && ch <= '9':
			digit = uint64(ch-'0') + 52
		case ch == '+':
			digit = 62
		case ch == '/':
			digit = 63
		default:
			return 0, fmt.Errorf("invalid base64 digit %q", ch)
		}
		n = n*64 + digit
	}
	return n, nil
}
