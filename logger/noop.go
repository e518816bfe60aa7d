package logger

import "time"

// NoopLogger discards every log event. It is the logger the client falls
// back to when none is configured, so call sites never nil-check.
type NoopLogger struct{}

// Ensure NoopLogger implements the interface
var _ Logger = NoopLogger{}

// NewNoop returns a logger that discards all events.
func NewNoop() Logger {
	return NoopLogger{}
}

func (NoopLogger) Info() LogEvent  { return noopEvent{} }
func (NoopLogger) Error() LogEvent { return noopEvent{} }
func (NoopLogger) Debug() LogEvent { return noopEvent{} }
func (NoopLogger) Warn() LogEvent  { return noopEvent{} }

func (n NoopLogger) WithFields(_ map[string]any) Logger { return n }

type noopEvent struct{}

func (noopEvent) Msg(string)          {}
func (noopEvent) Msgf(string, ...any) {}

func (e noopEvent) Err(error) LogEvent                 { return e }
func (e noopEvent) Str(string, string) LogEvent        { return e }
func (e noopEvent) Int(string, int) LogEvent           { return e }
func (e noopEvent) Int64(string, int64) LogEvent       { return e }
func (e noopEvent) Dur(string, time.Duration) LogEvent { return e }
func (e noopEvent) Interface(string, any) LogEvent     { return e }
func (e noopEvent) Bytes(string, []byte) LogEvent      { return e }
