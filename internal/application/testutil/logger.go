package testutil

import (
	"sync"

	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// LogEntry is one call captured by RecordingLogger.
type LogEntry struct {
	Level  string
	Msg    string
	Fields map[string]any
}

// RecordingLogger is a logger.Interface that keeps every entry for
// assertions. With and Named share the parent's entries.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []any
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (l *RecordingLogger) Debugw(msg string, kv ...any) { l.record("debug", msg, kv) }
func (l *RecordingLogger) Infow(msg string, kv ...any)  { l.record("info", msg, kv) }
func (l *RecordingLogger) Warnw(msg string, kv ...any)  { l.record("warn", msg, kv) }
func (l *RecordingLogger) Errorw(msg string, kv ...any) { l.record("error", msg, kv) }

func (l *RecordingLogger) With(args ...any) logger.Interface {
	fields := append(append([]any{}, l.fields...), args...)
	return &RecordingLogger{mu: l.mu, entries: l.entries, fields: fields}
}

func (l *RecordingLogger) Named(name string) logger.Interface {
	return l.With("logger", name)
}

// Find returns the first entry with msg at level.
func (l *RecordingLogger) Find(level, msg string) (LogEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range *l.entries {
		if e.Level == level && e.Msg == msg {
			return e, true
		}
	}
	return LogEntry{}, false
}

func (l *RecordingLogger) record(level, msg string, kv []any) {
	fields := make(map[string]any)
	all := append(append([]any{}, l.fields...), kv...)
	for i := 0; i+1 < len(all); i += 2 {
		if key, ok := all[i].(string); ok {
			fields[key] = all[i+1]
		}
	}

	l.mu.Lock()
	*l.entries = append(*l.entries, LogEntry{Level: level, Msg: msg, Fields: fields})
	l.mu.Unlock()
}
