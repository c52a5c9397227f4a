package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"vigil/core"
	"vigil/report"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *report.StatusReport {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return &report.StatusReport{
		GeneratedAt:  now,
		TotalPersons: 2,
		AtRisk: []report.PersonAtRisk{{
			Person: core.Person{
				Name:        "Ana",
				NationalID:  "12345678901",
				LastContact: now.Add(-3 * time.Hour),
			},
			TimeSinceContact: 3 * time.Hour,
		}},
		OpenIncidents: []report.OngoingIncident{{
			Incident: core.FailureIncident{
				Region:      "Centro",
				Kind:        core.FailureKindTotal,
				Description: "blackout",
				StartedAt:   now.Add(-time.Hour),
			},
			Elapsed: time.Hour,
		}},
		ActiveDevices: 1,
	}
}

func TestRenderText(t *testing.T) {
	color.NoColor = true
	out := renderText(sampleReport())

	assert.Contains(t, out, "Registered persons: 2")
	assert.Contains(t, out, "Ana (national id 12345678901)")
	assert.Contains(t, out, "3.0 hours ago")
	assert.Contains(t, out, "Centro (Total), ongoing for 1.0 hours")
}

func TestRenderYAML(t *testing.T) {
	out, err := renderYAML(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "total_persons: 2")
	assert.Contains(t, out, "active_devices: 1")
}

func TestWriteEventLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")

	require.NoError(t, writeEventLines(path, []string{"line one", "line two"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}
