package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_events_appended_total",
			Help: "Total number of events appended to the event log",
		},
		[]string{"kind"},
	)

	PersonsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_persons_registered_total",
			Help: "Total number of persons registered",
		},
	)

	FailuresOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_failures_opened_total",
			Help: "Total number of power failure incidents opened",
		},
		[]string{"kind"},
	)

	BroadcastsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_broadcasts_delivered_total",
			Help: "Total number of payloads broadcast to active devices",
		},
	)

	BroadcastsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_broadcasts_rejected_total",
			Help: "Total number of broadcasts rejected by the integrity check",
		},
	)

	RegistryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_registry_errors_total",
			Help: "Total number of failed registry operations",
		},
		[]string{"registry"},
	)
)
