package registry

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"vigil/core"
	"vigil/eventlog"
	"vigil/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// openFailureInput carries the validated incident fields.
type openFailureInput struct {
	Region      string `validate:"required"`
	Description string `validate:"required"`
}

// FailureRegistry owns all power-failure incidents. Incidents are created
// open, closed at most once and never deleted.
type FailureRegistry struct {
	mu        sync.RWMutex
	incidents []core.FailureIncident
	byID      map[string]int

	events *eventlog.Log
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewFailureRegistry creates an empty failure registry. The event log is
// required; a nil logger defaults to a no-op logger.
func NewFailureRegistry(events *eventlog.Log, logger *zap.SugaredLogger) *FailureRegistry {
	if events == nil {
		panic("events is required")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FailureRegistry{
		incidents: make([]core.FailureIncident, 0),
		byID:      make(map[string]int),
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

func (r *FailureRegistry) fail(op string, err error) error {
	r.events.Append(core.EventError, fmt.Sprintf("%s: %v", op, err), "")
	metrics.RegistryErrors.WithLabelValues("failure").Inc()
	return err
}

// Open creates a new incident with start time set to now and no end time.
// Region and description must be non-empty.
func (r *FailureRegistry) Open(region string, kind core.FailureKind, description string) (core.FailureIncident, error) {
	region = strings.TrimSpace(region)
	description = strings.TrimSpace(description)

	in := openFailureInput{Region: region, Description: description}
	if err := validate.Struct(in); err != nil {
		return core.FailureIncident{}, r.fail("open failure",
			fmt.Errorf("%w: region and description must be non-empty", core.ErrValidation))
	}
	if !kind.IsValid() {
		return core.FailureIncident{}, r.fail("open failure",
			fmt.Errorf("%w: unknown failure kind %q", core.ErrValidation, kind))
	}

	incident := core.FailureIncident{
		ID:          uuid.NewString(),
		Region:      region,
		Kind:        kind,
		Description: description,
		StartedAt:   r.now(),
	}

	r.mu.Lock()
	r.byID[incident.ID] = len(r.incidents)
	r.incidents = append(r.incidents, incident)
	r.mu.Unlock()

	r.events.Append(core.EventPowerFailure,
		fmt.Sprintf("power failure in %s: %s", incident.Region, incident.Kind), incident.ID)
	metrics.FailuresOpened.WithLabelValues(incident.Kind.String()).Inc()
	r.logger.Infow("failure opened", "incident_id", incident.ID, "region", incident.Region, "kind", incident.Kind)

	return incident.Clone(), nil
}

// Close sets the incident's end time to now. An incident can be closed at
// most once; closing an already-closed incident is a conflict.
func (r *FailureRegistry) Close(incidentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[incidentID]
	if !ok {
		return r.fail("close failure",
			fmt.Errorf("%w: incident %s", core.ErrNotFound, incidentID))
	}
	if r.incidents[idx].EndedAt != nil {
		return r.fail("close failure",
			fmt.Errorf("%w: incident %s already closed", core.ErrConflict, incidentID))
	}

	end := r.now()
	r.incidents[idx].EndedAt = &end

	r.logger.Infow("failure closed",
		"incident_id", incidentID,
		"duration", r.incidents[idx].Duration(end))
	return nil
}

// ListOpen returns a copy of every incident that has not been closed.
func (r *FailureRegistry) ListOpen() ([]core.FailureIncident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	open := make([]core.FailureIncident, 0)
	for _, f := range r.incidents {
		if f.Open() {
			open = append(open, f.Clone())
		}
	}
	return open, nil
}

// ListAll returns a copy of every incident, open or closed.
func (r *FailureRegistry) ListAll() ([]core.FailureIncident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]core.FailureIncident, 0, len(r.incidents))
	for _, f := range r.incidents {
		all = append(all, f.Clone())
	}
	return all, nil
}
