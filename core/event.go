package core

import "time"

// SystemEvent is one entry in the append-only event log. Events are never
// mutated or deleted after append.
type SystemEvent struct {
	ID          string    `json:"id"`
	Kind        EventKind `json:"kind"`
	Description string    `json:"description"`
	RelatedID   string    `json:"related_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
