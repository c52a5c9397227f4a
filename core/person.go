package core

import "time"

// Location is a geographic position report for a person.
type Location struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Person represents a tracked person. ID, NationalID and BirthDate are
// immutable after registration; LastContact and Position are updated by
// location updates and biometric re-detections.
type Person struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	NationalID     string       `json:"national_id"`
	BirthDate      time.Time    `json:"birth_date"`
	BiometricToken string       `json:"biometric_token"`
	Position       *Location    `json:"position,omitempty"`
	LastContact    time.Time    `json:"last_contact"`
	Status         PersonStatus `json:"status"`
}

// Clone returns a deep copy of the person, safe to hand to callers.
func (p Person) Clone() Person {
	out := p
	if p.Position != nil {
		pos := *p.Position
		out.Position = &pos
	}
	return out
}

// TimeSinceContact reports how long the person has gone without contact
// relative to now.
func (p Person) TimeSinceContact(now time.Time) time.Duration {
	return now.Sub(p.LastContact)
}

// AtRisk reports whether the person's last contact is older than the
// fixed risk threshold. Contact exactly at the threshold is not at risk.
func (p Person) AtRisk(now time.Time) bool {
	return p.TimeSinceContact(now) > RiskThreshold
}
