package cmd

import (
	"bytes"
	"testing"
	"time"

	"vigil/eventlog"
	"vigil/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpMetrics(t *testing.T) {
	// Drive a couple of counters so the dump has real samples.
	events := eventlog.New(nil)
	persons := registry.NewPersonRegistry(events, nil)
	_, err := persons.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, dumpMetrics(&out))

	dump := out.String()
	assert.Contains(t, dump, "vigil_persons_registered_total")
	assert.Contains(t, dump, "vigil_events_appended_total")
}

func TestMetricsCmd(t *testing.T) {
	cmd := newMetricsCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "# TYPE")
}
