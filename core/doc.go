// Package core defines the domain model for the Vigil emergency-response
// monitoring system.
//
// The core package provides:
//   - Domain types (Person, FailureIncident, Device, SystemEvent)
//   - Constants and enums for status values and event kinds
//   - The error taxonomy shared by all registries
//   - Biometric token derivation
//
// Registries in the registry package exclusively own their entity stores and
// hand out copies of these types, never live aliases into internal storage.
package core
