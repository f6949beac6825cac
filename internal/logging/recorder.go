package logging

import (
	"sync"

	"github.com/brokenalarms/astro-masonry/types"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// Value returns the value logged under key, or nil.
func (e Entry) Value(key string) any {
	for i := 0; i+1 < len(e.KeysAndValues); i += 2 {
		if k, ok := e.KeysAndValues[i].(string); ok && k == key {
			return e.KeysAndValues[i+1]
		}
	}

	return nil
}

// Recorder is a logger that keeps every message in memory.
//
// Tests use it to assert that diagnostics (e.g. malformed breakpoint warnings)
// were reported. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ types.Logger = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Debug records a debug-level message.
func (r *Recorder) Debug(msg string, keysAndValues ...any) { r.add("DEBUG", msg, keysAndValues) }

// Info records an info-level message.
func (r *Recorder) Info(msg string, keysAndValues ...any) { r.add("INFO", msg, keysAndValues) }

// Warn records a warning-level message.
func (r *Recorder) Warn(msg string, keysAndValues ...any) { r.add("WARN", msg, keysAndValues) }

// Error records an error-level message.
func (r *Recorder) Error(msg string, keysAndValues ...any) { r.add("ERROR", msg, keysAndValues) }

// Entries returns the recorded entries at level ("" for all levels).
func (r *Recorder) Entries(level string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}

	return out
}

func (r *Recorder) add(level, msg string, keysAndValues []any) {
	kv := make([]any, len(keysAndValues))
	copy(kv, keysAndValues)

	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: kv})
	r.mu.Unlock()
}
