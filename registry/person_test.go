package registry

import (
	"errors"
	"testing"
	"time"

	"vigil/core"
	"vigil/eventlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock pins registry time so risk-window tests can advance it.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.current
}

func (c *testClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestPersonRegistry(t *testing.T) (*PersonRegistry, *eventlog.Log, *testClock) {
	t.Helper()
	clock := newTestClock()
	events := eventlog.New(nil)
	r := NewPersonRegistry(events, nil)
	r.now = clock.Now
	return r, events, clock
}

func TestPersonRegistry_Register(t *testing.T) {
	r, events, clock := newTestPersonRegistry(t)

	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := r.Register("Ana", "12345678901", birth)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "12345678901", p.NationalID)
	assert.Equal(t, core.PersonStatusUnknown, p.Status)
	assert.Equal(t, clock.Now(), p.LastContact)
	assert.Len(t, p.BiometricToken, core.BiometricTokenLength)
	assert.Nil(t, p.Position)

	appended := events.Query(core.EventPersonRegistered, time.Time{})
	require.Len(t, appended, 1)
	assert.Equal(t, p.ID, appended[0].RelatedID)
}

func TestPersonRegistry_Register_TrimsInput(t *testing.T) {
	r, _, _ := newTestPersonRegistry(t)

	p, err := r.Register("  Ana  ", " 12345678901 ", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "12345678901", p.NationalID)
}

func TestPersonRegistry_Register_ValidationFailures(t *testing.T) {
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		personName string
		nationalID string
		birthDate  time.Time
	}{
		{"empty name", "", "12345678901", birth},
		{"whitespace name", "   ", "12345678901", birth},
		{"empty national id", "Ana", "", birth},
		{"short national id", "Ana", "1234567890", birth},
		{"long national id", "Ana", "123456789012", birth},
		{"non-numeric national id", "Ana", "1234567890a", birth},
		{"signed national id", "Ana", "+1234567890", birth},
		{"negative national id", "Ana", "-1234567890", birth},
		{"decimal national id", "Ana", "12345.67890", birth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, events, _ := newTestPersonRegistry(t)

			_, err := r.Register(tt.personName, tt.nationalID, tt.birthDate)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrValidation), "want validation error, got %v", err)

			all, err := r.ListAll()
			require.NoError(t, err)
			assert.Empty(t, all)

			assert.Len(t, events.Query(core.EventError, time.Time{}), 1)
		})
	}
}

func TestPersonRegistry_Register_BirthDateBounds(t *testing.T) {
	r, _, clock := newTestPersonRegistry(t)

	_, err := r.Register("Ana", "12345678901", clock.Now().Add(24*time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))

	_, err = r.Register("Ana", "12345678901", clock.Now().AddDate(-121, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))

	// Exactly 120 years old is still valid.
	_, err = r.Register("Ana", "12345678901", clock.Now().AddDate(-120, 0, 0))
	assert.NoError(t, err)
}

func TestPersonRegistry_Register_DuplicateNationalID(t *testing.T) {
	r, events, _ := newTestPersonRegistry(t)

	_, err := r.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = r.Register("Outra Ana", "12345678901", time.Date(1992, 3, 4, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConflict), "want conflict error, got %v", err)

	all, err := r.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.Len(t, events.Query(core.EventError, time.Time{}), 1)
}

func TestPersonRegistry_FindByBiometricToken(t *testing.T) {
	r, events, clock := newTestPersonRegistry(t)

	p, err := r.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)

	found, err := r.FindByBiometricToken(p.BiometricToken)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	assert.Equal(t, clock.Now(), found.LastContact, "re-detection must refresh last contact")

	detections := events.Query(core.EventBiometricDetection, time.Time{})
	require.Len(t, detections, 1)
	assert.Equal(t, p.ID, detections[0].RelatedID)
}

func TestPersonRegistry_FindByBiometricToken_Failures(t *testing.T) {
	r, _, _ := newTestPersonRegistry(t)

	_, err := r.FindByBiometricToken("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))

	_, err = r.FindByBiometricToken("no-such-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestPersonRegistry_UpdateLocation(t *testing.T) {
	r, _, clock := newTestPersonRegistry(t)

	p, err := r.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	clock.Advance(time.Hour)
	require.NoError(t, r.UpdateLocation(p.ID, -23.5505, -46.6333, "downtown shelter"))

	all, err := r.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Position)
	assert.Equal(t, -23.5505, all[0].Position.Latitude)
	assert.Equal(t, -46.6333, all[0].Position.Longitude)
	assert.Equal(t, "downtown shelter", all[0].Position.Description)
	assert.Equal(t, clock.Now(), all[0].LastContact)
}

func TestPersonRegistry_UpdateLocation_Failures(t *testing.T) {
	r, _, _ := newTestPersonRegistry(t)

	p, err := r.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	err = r.UpdateLocation(p.ID, -91, 0, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))

	err = r.UpdateLocation(p.ID, 0, 180.5, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))

	err = r.UpdateLocation("no-such-id", 0, 0, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestPersonRegistry_ListAtRisk(t *testing.T) {
	r, _, clock := newTestPersonRegistry(t)

	ana, err := r.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Just registered: nobody is at risk.
	atRisk, err := r.ListAtRisk()
	require.NoError(t, err)
	assert.Empty(t, atRisk)

	// Exactly at the threshold is still not at risk.
	clock.Advance(core.RiskThreshold)
	atRisk, err = r.ListAtRisk()
	require.NoError(t, err)
	assert.Empty(t, atRisk)

	clock.Advance(time.Hour)
	atRisk, err = r.ListAtRisk()
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, ana.ID, atRisk[0].ID)
}

func TestPersonRegistry_ListAtRisk_ContactRefreshClears(t *testing.T) {
	r, _, clock := newTestPersonRegistry(t)

	ana, err := r.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)
	atRisk, err := r.ListAtRisk()
	require.NoError(t, err)
	require.Len(t, atRisk, 1)

	_, err = r.FindByBiometricToken(ana.BiometricToken)
	require.NoError(t, err)

	atRisk, err = r.ListAtRisk()
	require.NoError(t, err)
	assert.Empty(t, atRisk)
}

func TestPersonRegistry_ListAll_DefensiveCopy(t *testing.T) {
	r, _, _ := newTestPersonRegistry(t)

	p, err := r.Register("Ana", "12345678901", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, r.UpdateLocation(p.ID, 1, 2, "somewhere"))

	all, err := r.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)

	// Mutating the returned copy must not reach the registry's store.
	all[0].Name = "tampered"
	all[0].Position.Latitude = 99

	fresh, err := r.ListAll()
	require.NoError(t, err)
	assert.Equal(t, "Ana", fresh[0].Name)
	assert.Equal(t, 1.0, fresh[0].Position.Latitude)
}
