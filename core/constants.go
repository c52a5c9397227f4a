package core

import "time"

// Policy constants. These are fixed by design, not configuration.
const (
	// RiskThreshold is how long a person may go without contact before
	// ListAtRisk reports them. Contact exactly at the threshold is not
	// considered at risk.
	RiskThreshold = 2 * time.Hour

	// BiometricTokenLength is the length the derived biometric token is
	// truncated to.
	BiometricTokenLength = 16

	// NationalIDLength is the required number of digits in a national id.
	NationalIDLength = 11

	// MaxPersonAge bounds how far in the past a birth date may lie.
	MaxPersonAge = 120
)

// PersonStatus represents the safety status of a tracked person.
type PersonStatus string

const (
	// PersonStatusSafe indicates a person confirmed out of danger.
	PersonStatusSafe PersonStatus = "Safe"
	// PersonStatusAtRisk indicates a person flagged by the risk derivation.
	PersonStatusAtRisk PersonStatus = "AtRisk"
	// PersonStatusMissing indicates a person reported missing.
	PersonStatusMissing PersonStatus = "Missing"
	// PersonStatusUnknown is the initial status at registration.
	PersonStatusUnknown PersonStatus = "Unknown"
)

// String returns the string representation
func (s PersonStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s PersonStatus) IsValid() bool {
	switch s {
	case PersonStatusSafe, PersonStatusAtRisk, PersonStatusMissing, PersonStatusUnknown:
		return true
	default:
		return false
	}
}

// FailureKind classifies a power-grid failure incident.
type FailureKind string

const (
	// FailureKindTotal is a full outage of the affected region.
	FailureKindTotal FailureKind = "Total"
	// FailureKindPartial is a partial outage.
	FailureKindPartial FailureKind = "Partial"
	// FailureKindOverload is a grid overload event.
	FailureKindOverload FailureKind = "Overload"
	// FailureKindCatastrophe is a large-scale destructive failure.
	FailureKindCatastrophe FailureKind = "Catastrophe"
)

// String returns the string representation
func (k FailureKind) String() string {
	return string(k)
}

// IsValid checks if the failure kind is valid
func (k FailureKind) IsValid() bool {
	switch k {
	case FailureKindTotal, FailureKindPartial, FailureKindOverload, FailureKindCatastrophe:
		return true
	default:
		return false
	}
}

// EventKind classifies a SystemEvent in the append-only event log.
type EventKind string

const (
	// EventPersonRegistered records a successful person registration.
	EventPersonRegistered EventKind = "PersonRegistered"
	// EventBiometricDetection records a person matched by biometric token.
	EventBiometricDetection EventKind = "BiometricDetection"
	// EventPowerFailure records a power failure being opened.
	EventPowerFailure EventKind = "PowerFailure"
	// EventDeviceSync records device membership and broadcast activity.
	EventDeviceSync EventKind = "DeviceSync"
	// EventCloudSync records a simulated cloud synchronization.
	EventCloudSync EventKind = "CloudSync"
	// EventError records a failed registry operation.
	EventError EventKind = "Error"
)

// String returns the string representation
func (k EventKind) String() string {
	return string(k)
}

// IsValid checks if the event kind is valid
func (k EventKind) IsValid() bool {
	switch k {
	case EventPersonRegistered, EventBiometricDetection, EventPowerFailure,
		EventDeviceSync, EventCloudSync, EventError:
		return true
	default:
		return false
	}
}
