package registry

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"vigil/core"
	"vigil/eventlog"
	"vigil/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validate is shared by all registries in this package. Struct validation is
// stateless, so a single instance is safe for concurrent use.
var validate = validator.New()

// registerPersonInput carries the validated registration fields. The
// national id tag is "number", not "numeric": numeric also matches signed
// and decimal strings, while the id must be digits only.
type registerPersonInput struct {
	Name       string `validate:"required"`
	NationalID string `validate:"required,len=11,number"`
}

// PersonRegistry owns all person records. Construct with NewPersonRegistry.
type PersonRegistry struct {
	mu      sync.RWMutex
	persons []core.Person
	byID    map[string]int
	byNatID map[string]int
	byToken map[string]int

	events *eventlog.Log
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewPersonRegistry creates an empty person registry. The event log is
// required; a nil logger defaults to a no-op logger.
func NewPersonRegistry(events *eventlog.Log, logger *zap.SugaredLogger) *PersonRegistry {
	if events == nil {
		panic("events is required")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &PersonRegistry{
		persons: make([]core.Person, 0),
		byID:    make(map[string]int),
		byNatID: make(map[string]int),
		byToken: make(map[string]int),
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

// fail appends a best-effort Error event and returns err unchanged.
func (r *PersonRegistry) fail(op string, err error) error {
	r.events.Append(core.EventError, fmt.Sprintf("%s: %v", op, err), "")
	metrics.RegistryErrors.WithLabelValues("person").Inc()
	return err
}

// Register creates a new person record. The national id must be exactly 11
// digits and unique across all registered persons; the birth date must lie
// in the past and no more than 120 years before now. On success the person
// starts with status Unknown, last contact set to now and a freshly derived
// biometric token.
func (r *PersonRegistry) Register(name, nationalID string, birthDate time.Time) (core.Person, error) {
	name = strings.TrimSpace(name)
	nationalID = strings.TrimSpace(nationalID)

	in := registerPersonInput{Name: name, NationalID: nationalID}
	if err := validate.Struct(in); err != nil {
		return core.Person{}, r.fail("register person",
			fmt.Errorf("%w: name must be non-empty and national id must be %d digits", core.ErrValidation, core.NationalIDLength))
	}

	now := r.now()
	if birthDate.After(now) {
		return core.Person{}, r.fail("register person",
			fmt.Errorf("%w: birth date cannot be in the future", core.ErrValidation))
	}
	if birthDate.Before(now.AddDate(-core.MaxPersonAge, 0, 0)) {
		return core.Person{}, r.fail("register person",
			fmt.Errorf("%w: birth date more than %d years ago", core.ErrValidation, core.MaxPersonAge))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNatID[nationalID]; exists {
		return core.Person{}, r.fail("register person",
			fmt.Errorf("%w: national id already registered", core.ErrConflict))
	}

	person := core.Person{
		ID:             uuid.NewString(),
		Name:           name,
		NationalID:     nationalID,
		BirthDate:      birthDate,
		BiometricToken: core.DeriveBiometricToken(name, nationalID, now),
		LastContact:    now,
		Status:         core.PersonStatusUnknown,
	}

	idx := len(r.persons)
	r.persons = append(r.persons, person)
	r.byID[person.ID] = idx
	r.byNatID[person.NationalID] = idx
	r.byToken[person.BiometricToken] = idx

	r.events.Append(core.EventPersonRegistered,
		fmt.Sprintf("person %s registered", person.Name), person.ID)
	metrics.PersonsRegistered.Inc()
	r.logger.Infow("person registered", "person_id", person.ID, "name", person.Name)

	return person.Clone(), nil
}

// FindByBiometricToken looks a person up by biometric token. A match
// refreshes the person's last-contact timestamp and records a
// BiometricDetection event, so a re-detection counts as proof of liveness.
func (r *PersonRegistry) FindByBiometricToken(token string) (core.Person, error) {
	if strings.TrimSpace(token) == "" {
		return core.Person{}, r.fail("biometric lookup",
			fmt.Errorf("%w: biometric token cannot be empty", core.ErrValidation))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byToken[token]
	if !ok {
		return core.Person{}, r.fail("biometric lookup",
			fmt.Errorf("%w: no person matches the given biometric token", core.ErrNotFound))
	}

	r.persons[idx].LastContact = r.now()
	person := r.persons[idx]

	r.events.Append(core.EventBiometricDetection,
		fmt.Sprintf("person %s detected via biometrics", person.Name), person.ID)
	r.logger.Debugw("biometric detection", "person_id", person.ID)

	return person.Clone(), nil
}

// UpdateLocation replaces the person's position and refreshes their
// last-contact timestamp. Latitude must lie in [-90,90] and longitude in
// [-180,180].
func (r *PersonRegistry) UpdateLocation(personID string, lat, lon float64, description string) error {
	if lat < -90 || lat > 90 {
		return r.fail("update location",
			fmt.Errorf("%w: latitude must be between -90 and 90", core.ErrValidation))
	}
	if lon < -180 || lon > 180 {
		return r.fail("update location",
			fmt.Errorf("%w: longitude must be between -180 and 180", core.ErrValidation))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[personID]
	if !ok {
		return r.fail("update location",
			fmt.Errorf("%w: person %s", core.ErrNotFound, personID))
	}

	now := r.now()
	r.persons[idx].Position = &core.Location{
		Latitude:    lat,
		Longitude:   lon,
		Description: strings.TrimSpace(description),
		Timestamp:   now,
	}
	r.persons[idx].LastContact = now

	r.logger.Debugw("location updated", "person_id", personID, "lat", lat, "lon", lon)
	return nil
}

// ListAtRisk returns every person whose last contact is older than the risk
// threshold. A person contacted exactly at the threshold is not included.
func (r *PersonRegistry) ListAtRisk() ([]core.Person, error) {
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	atRisk := make([]core.Person, 0)
	for _, p := range r.persons {
		if p.AtRisk(now) {
			atRisk = append(atRisk, p.Clone())
		}
	}
	return atRisk, nil
}

// ListAll returns a copy of every registered person.
func (r *PersonRegistry) ListAll() ([]core.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]core.Person, 0, len(r.persons))
	for _, p := range r.persons {
		all = append(all, p.Clone())
	}
	return all, nil
}
