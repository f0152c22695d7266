package server

import (
	"errors"
	"fmt"

	"github.com/dictsrv/dictsrv/dict"
	"github.com/dictsrv/dictsrv/protocol"
)

// helpLines is the HELP command reference, one payload line per command.
var helpLines = []string{
	"DEFINE database word         -- look up word in database",
	"MATCH database strategy word -- match word in database using strategy",
	"SHOW DB                      -- list all accessible databases",
	"SHOW DATABASES               -- list all accessible databases",
	"SHOW STRAT                   -- list available matching strategies",
	"SHOW STRATEGIES              -- list available matching strategies",
	"SHOW INFO database           -- provide information about the database",
	"SHOW SERVER                  -- provide site-specific information",
	"HELP                         -- display this help information",
	"XRANDOM                      -- return a random definition",
	"QUIT                         -- terminate connection",
}

// lookupStatus maps the lookup error taxonomy to a status code and
// status-line text.
func lookupStatus(err error) (int, string) {
	var unknownDB *dict.UnknownDatabaseError
	var unknownStrat *dict.UnknownStrategyError

	switch {
	case errors.Is(err, dict.ErrNotImplemented):
		return protocol.StatusParamNotImplemented,
			protocol.StatusText(protocol.StatusParamNotImplemented)
	case errors.As(err, &unknownDB):
		return protocol.StatusInvalidDatabase,
			protocol.StatusText(protocol.StatusInvalidDatabase)
	case errors.As(err, &unknownStrat):
		return protocol.StatusInvalidStrategy,
			protocol.StatusText(protocol.StatusInvalidStrategy)
	default:
		return protocol.StatusIllegalParameters, err.Error()
	}
}

// writeDefinitions renders a successful DEFINE: a 150 count, one 151
// text block per definition body, and the closing 250.
func writeDefinitions(w *protocol.Writer, results []dict.DefineResult) {
	count := 0
	for _, r := range results {
		count += len(r.Entry.Definitions)
	}

	w.WriteStatusLine(protocol.StatusDefinitionsFollow,
		"%d definitions retrieved - definitions follow", count)
	for _, r := range results {
		for _, body := range r.Entry.Definitions {
			w.WriteStatusLine(protocol.StatusDefinitionBlock,
				"%q %s %q", r.Entry.Headword, r.Database, r.Description)
			w.WriteTextBlock(body)
		}
	}
	w.WriteStatus(protocol.StatusOK)
}

// writeMatches renders a successful MATCH: a 152 count, one
// `database "headword"` line per match, and the closing 250.
func writeMatches(w *protocol.Writer, results []dict.MatchResult) {
	w.WriteStatusLine(protocol.StatusMatchesFollow,
		"%d matches found - text follows", len(results))
	for _, r := range results {
		w.WriteTextLine(fmt.Sprintf("%s %q", r.Database, r.Headword))
	}
	w.WriteEndOfBlock()
	w.WriteStatus(protocol.StatusOK)
}

// writeDatabaseList renders SHOW DB. An empty registry answers 554.
func writeDatabaseList(w *protocol.Writer, databases []*dict.Database) {
	if len(databases) == 0 {
		w.WriteStatus(protocol.StatusNoDatabasesPresent)
		return
	}
	w.WriteStatusLine(protocol.StatusDatabasesFollow,
		"%d databases present - text follows", len(databases))
	for _, db := range databases {
		w.WriteTextLine(fmt.Sprintf("%s %q", db.Name(), db.Description()))
	}
	w.WriteEndOfBlock()
	w.WriteStatus(protocol.StatusOK)
}

// writeStrategyList renders SHOW STRAT. An empty set answers 555.
func writeStrategyList(w *protocol.Writer, strategies []dict.Strategy) {
	if len(strategies) == 0 {
		w.WriteStatus(protocol.StatusNoStrategiesAvailable)
		return
	}
	w.WriteStatusLine(protocol.StatusStrategiesFollow,
		"%d strategies available - text follows", len(strategies))
	for _, s := range strategies {
		w.WriteTextLine(fmt.Sprintf("%s %q", s.Name, s.Description))
	}
	w.WriteEndOfBlock()
	w.WriteStatus(protocol.StatusOK)
}

// writeDatabaseInfo renders SHOW INFO: the database description line
// followed by its long info text.
func writeDatabaseInfo(w *protocol.Writer, db *dict.Database) {
	w.WriteStatusLine(protocol.StatusDatabaseInfo,
		"information for %s follows", db.Name())
	w.WriteTextLine(db.Description())
	if info := db.Info(); info != "" {
		w.WriteTextLine("")
		w.WriteTextLine(info)
	}
	w.WriteEndOfBlock()
	w.WriteStatus(protocol.StatusOK)
}

// writeServerInfo renders SHOW SERVER.
func writeServerInfo(w *protocol.Writer, text string) {
	w.WriteStatus(protocol.StatusServerInfo)
	if text != "" {
		w.WriteTextLine(text)
	}
	w.WriteEndOfBlock()
	w.WriteStatus(protocol.StatusOK)
}
