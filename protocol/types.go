package protocol

import "fmt"

// DICT protocol status codes (RFC 2229 section 2.4.2). Formatting is
// table-driven through StatusText so codes stay verifiable against the
// RFC instead of being scattered as string literals.
const (
	StatusDatabasesFollow  = 110 // n databases present - text follows
	StatusStrategiesFollow = 111 // n strategies available - text follows
	StatusDatabaseInfo     = 112 // database information follows
	StatusHelpFollows      = 113 // help text follows
	StatusServerInfo       = 114 // server information follows

	StatusDefinitionsFollow = 150 // n definitions retrieved - definitions follow
	StatusDefinitionBlock   = 151 // word database name - text follows
	StatusMatchesFollow     = 152 // n matches found - text follows

	StatusBanner  = 220 // text msg-id
	StatusClosing = 221 // closing connection
	StatusOK      = 250 // ok

	StatusUnknownCommand        = 500 // syntax error, command not recognized
	StatusIllegalParameters     = 501 // syntax error, illegal parameters
	StatusCommandNotImplemented = 502 // command not implemented
	StatusParamNotImplemented   = 503 // command parameter not implemented
	StatusInvalidDatabase       = 550 // invalid database
	StatusInvalidStrategy       = 551 // invalid strategy
	StatusNoMatch               = 552 // no match
	StatusNoDatabasesPresent    = 554 // no databases present
	StatusNoStrategiesAvailable = 555 // no strategies available
)

// statusText holds the default status-line text per code, used when the
// caller does not supply its own.
var statusText = map[int]string{
	StatusDatabasesFollow:       "databases present - text follows",
	StatusStrategiesFollow:      "strategies available - text follows",
	StatusDatabaseInfo:          "database information follows",
	StatusHelpFollows:           "help text follows",
	StatusServerInfo:            "server information follows",
	StatusDefinitionsFollow:     "definitions retrieved - definitions follow",
	StatusDefinitionBlock:       "text follows",
	StatusMatchesFollow:         "matches found - text follows",
	StatusBanner:                "ready",
	StatusClosing:               "closing connection",
	StatusOK:                    "ok",
	StatusUnknownCommand:        "syntax error, command not recognized",
	StatusIllegalParameters:     "syntax error, illegal parameters",
	StatusCommandNotImplemented: "command not implemented",
	StatusParamNotImplemented:   "command parameter not implemented",
	StatusInvalidDatabase:       `invalid database, use "SHOW DB" for list of databases`,
	StatusInvalidStrategy:       `invalid strategy, use "SHOW STRAT" for a list of strategies`,
	StatusNoMatch:               "no match",
	StatusNoDatabasesPresent:    "no databases present",
	StatusNoStrategiesAvailable: "no strategies available",
}

// StatusText returns the default status-line text for a code. Unlisted
// codes fall back to a generic text form.
func StatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return fmt.Sprintf("status %d", code)
}

// Command is one parsed client line: an upper-cased verb plus its raw
// argument tokens. A Command with an empty Name represents a blank input
// line; the session decides that nothing is written in response.
type Command struct {
	Name string
	Args []string
}

// Empty reports whether the command came from a blank line.
func (c Command) Empty() bool { return c.Name == "" }
