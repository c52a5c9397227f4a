// Package report aggregates read-only snapshots from the person, failure and
// device registries into a structured status report. Building a report emits
// no events on success; the rendering of a report (text, YAML, file output)
// belongs to the calling layer.
package report

import (
	"fmt"
	"time"

	"vigil/core"
	"vigil/eventlog"

	"go.uber.org/zap"
)

// PersonSource provides the person snapshots the builder needs.
type PersonSource interface {
	ListAll() ([]core.Person, error)
	ListAtRisk() ([]core.Person, error)
}

// FailureSource provides the open-incident snapshot.
type FailureSource interface {
	ListOpen() ([]core.FailureIncident, error)
}

// DeviceSource provides the active-device snapshot.
type DeviceSource interface {
	ListActive() ([]core.Device, error)
}

// PersonAtRisk pairs a person with how long they have gone without contact.
type PersonAtRisk struct {
	Person           core.Person   `json:"person" yaml:"person"`
	TimeSinceContact time.Duration `json:"time_since_contact" yaml:"time_since_contact"`
}

// OngoingIncident pairs an open incident with its elapsed duration.
type OngoingIncident struct {
	Incident core.FailureIncident `json:"incident" yaml:"incident"`
	Elapsed  time.Duration        `json:"elapsed" yaml:"elapsed"`
}

// StatusReport is a consistent point-in-time summary of the system.
type StatusReport struct {
	GeneratedAt   time.Time         `json:"generated_at" yaml:"generated_at"`
	TotalPersons  int               `json:"total_persons" yaml:"total_persons"`
	AtRisk        []PersonAtRisk    `json:"at_risk" yaml:"at_risk"`
	OpenIncidents []OngoingIncident `json:"open_incidents" yaml:"open_incidents"`
	ActiveDevices int               `json:"active_devices" yaml:"active_devices"`
}

// Builder aggregates registry snapshots into status reports.
type Builder struct {
	persons  PersonSource
	failures FailureSource
	devices  DeviceSource
	events   *eventlog.Log
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewBuilder creates a report builder over the three registries. All
// sources and the event log are required; a nil logger defaults to a no-op
// logger.
func NewBuilder(persons PersonSource, failures FailureSource, devices DeviceSource, events *eventlog.Log, logger *zap.SugaredLogger) *Builder {
	if persons == nil || failures == nil || devices == nil {
		panic("all registry sources are required")
	}
	if events == nil {
		panic("events is required")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{
		persons:  persons,
		failures: failures,
		devices:  devices,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Build assembles a status report from the current registry state. On any
// underlying registry failure an Error event is appended and the failure is
// returned to the caller.
func (b *Builder) Build() (*StatusReport, error) {
	now := b.now()

	all, err := b.persons.ListAll()
	if err != nil {
		return nil, b.fail("list persons", err)
	}
	atRisk, err := b.persons.ListAtRisk()
	if err != nil {
		return nil, b.fail("list at-risk persons", err)
	}
	open, err := b.failures.ListOpen()
	if err != nil {
		return nil, b.fail("list open incidents", err)
	}
	active, err := b.devices.ListActive()
	if err != nil {
		return nil, b.fail("list active devices", err)
	}

	rep := &StatusReport{
		GeneratedAt:   now,
		TotalPersons:  len(all),
		AtRisk:        make([]PersonAtRisk, 0, len(atRisk)),
		OpenIncidents: make([]OngoingIncident, 0, len(open)),
		ActiveDevices: len(active),
	}
	for _, p := range atRisk {
		rep.AtRisk = append(rep.AtRisk, PersonAtRisk{
			Person:           p,
			TimeSinceContact: p.TimeSinceContact(now),
		})
	}
	for _, f := range open {
		rep.OpenIncidents = append(rep.OpenIncidents, OngoingIncident{
			Incident: f,
			Elapsed:  f.Duration(now),
		})
	}

	b.logger.Debugw("status report built",
		"persons", rep.TotalPersons,
		"at_risk", len(rep.AtRisk),
		"open_incidents", len(rep.OpenIncidents),
		"active_devices", rep.ActiveDevices)

	return rep, nil
}

func (b *Builder) fail(op string, err error) error {
	wrapped := fmt.Errorf("build status report: %s: %w", op, err)
	b.events.Append(core.EventError, wrapped.Error(), "")
	return wrapped
}
