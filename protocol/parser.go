package protocol

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote indicates a command line whose quoted argument
// never closes.
var ErrUnterminatedQuote = errors.New("unterminated quoted argument")

// Parse splits one complete command line into a Command. Tokens are
// separated by whitespace; single or double quotes group a token with
// embedded whitespace and a backslash escapes the next character
// (RFC 2229 section 2.2). The verb is upper-cased, arguments are kept
// verbatim. A blank line parses to an empty Command, not an error.
//
// Parse is purely syntactic: it never decides whether a verb is
// supported and performs no I/O.
func Parse(line string) (Command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) == 0 {
		return Command{}, nil
	}
	return Command{
		Name: strings.ToUpper(tokens[0]),
		Args: tokens[1:],
	}, nil
}

func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
		quote   rune // active quote character, 0 when outside quotes
		escaped bool
	)

	for _, ch := range line {
		switch {
		case escaped:
			current.WriteRune(ch)
			inToken = true
			escaped = false
		case ch == '\\':
			escaped = true
			inToken = true
		case quote != 0:
			if ch == quote {
				quote = 0
			} else {
				current.WriteRune(ch)
			}
		case ch == '"' || ch == '\'':
			quote = ch
			inToken = true
		case unicode.IsSpace(ch):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(ch)
			inToken = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
