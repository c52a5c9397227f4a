// Package eventlog implements the append-only system event log shared by all
// registries. The log owns its store and its own lock, independent of the
// registries' locks, so concurrent appends from multiple registries cannot
// deadlock or lose updates.
package eventlog

import (
	"fmt"
	"sync"
	"time"

	"vigil/core"
	"vigil/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// timestampLayout is the format used by ExportLines.
const timestampLayout = "2006-01-02 15:04:05"

// Log is the append-only event log. The zero value is not usable; construct
// with New.
type Log struct {
	mu     sync.RWMutex
	events []core.SystemEvent
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates an empty event log. A nil logger defaults to a no-op logger.
func New(logger *zap.SugaredLogger) *Log {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Log{
		events: make([]core.SystemEvent, 0),
		logger: logger,
		now:    time.Now,
	}
}

// Append records a domain occurrence. The id and timestamp are assigned
// here; relatedID may be empty. Append never fails: the only input check is
// that kind is a declared variant, and an unknown kind is recorded as an
// Error event instead of being dropped.
func (l *Log) Append(kind core.EventKind, description, relatedID string) {
	if !kind.IsValid() {
		l.logger.Warnw("unknown event kind", "kind", kind)
		description = fmt.Sprintf("unknown event kind %q: %s", kind, description)
		kind = core.EventError
	}

	event := core.SystemEvent{
		ID:          uuid.NewString(),
		Kind:        kind,
		Description: description,
		RelatedID:   relatedID,
		Timestamp:   l.now(),
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	metrics.EventsAppended.WithLabelValues(kind.String()).Inc()
	l.logger.Debugw("event appended", "kind", kind, "related_id", relatedID)
}

// Query returns events newest-first. A non-empty kind restricts to that
// kind; a non-zero since restricts to events at or after that instant.
// Filters are conjunctive.
func (l *Log) Query(kind core.EventKind, since time.Time) []core.SystemEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	results := make([]core.SystemEvent, 0)
	// Stored oldest-first, so walk backwards for newest-first output.
	for i := len(l.events) - 1; i >= 0; i-- {
		e := l.events[i]
		if kind != "" && e.Kind != kind {
			continue
		}
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		results = append(results, e)
	}
	return results
}

// Len returns the number of events appended so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// ExportLines renders every event newest-first as
// "timestamp [Kind] description" lines for the log-export collaborator.
// The log itself performs no file I/O.
func (l *Log) ExportLines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	lines := make([]string, 0, len(l.events))
	for i := len(l.events) - 1; i >= 0; i-- {
		e := l.events[i]
		lines = append(lines, e.Timestamp.Format(timestampLayout)+" ["+e.Kind.String()+"] "+e.Description)
	}
	return lines
}
