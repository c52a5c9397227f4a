package core

import "time"

// FailureIncident represents a power-grid failure. An incident is created
// open (EndedAt nil) and closed at most once; it is never deleted.
type FailureIncident struct {
	ID              string      `json:"id"`
	Region          string      `json:"region"`
	Kind            FailureKind `json:"kind"`
	Description     string      `json:"description"`
	AffectedPersons int         `json:"affected_persons"`
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         *time.Time  `json:"ended_at,omitempty"`
}

// Open reports whether the incident is still ongoing.
func (f FailureIncident) Open() bool {
	return f.EndedAt == nil
}

// Duration returns end-start for a closed incident, or elapsed time since
// start relative to now while the incident is still open.
func (f FailureIncident) Duration(now time.Time) time.Duration {
	if f.EndedAt != nil {
		return f.EndedAt.Sub(f.StartedAt)
	}
	return now.Sub(f.StartedAt)
}

// Clone returns a deep copy of the incident.
func (f FailureIncident) Clone() FailureIncident {
	out := f
	if f.EndedAt != nil {
		end := *f.EndedAt
		out.EndedAt = &end
	}
	return out
}
