// Package zlog bridges the dictsrv library Logger interface to zerolog.
package zlog

import (
	"time"

	"github.com/rs/zerolog"

	dictsrv "github.com/dictsrv/dictsrv"
)

// Adapter implements dictsrv.Logger using zerolog.
type Adapter struct {
	logger zerolog.Logger
}

// New creates an adapter wrapping an existing zerolog.Logger.
func New(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug logs a debug-level message.
func (a *Adapter) Debug(msg string, fields ...dictsrv.Field) {
	event := a.logger.Debug()
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// Info logs an info-level message.
func (a *Adapter) Info(msg string, fields ...dictsrv.Field) {
	event := a.logger.Info()
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// Error logs an error-level message.
func (a *Adapter) Error(msg string, fields ...dictsrv.Field) {
	event := a.logger.Error()
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// addField adds a Field to a zerolog.Event.
func addField(event *zerolog.Event, f dictsrv.Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case int64:
		return event.Int64(f.Key, v)
	case float64:
		return event.Float64(f.Key, v)
	case bool:
		return event.Bool(f.Key, v)
	case time.Duration:
		return event.Dur(f.Key, v)
	case error:
		return event.Err(v)
	default:
		return event.Interface(f.Key, v)
	}
}
