package registry

import (
	"crypto/sha256"
	"encoding/base64"
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

// connectDeviceInput carries the validated device fields.
type connectDeviceInput struct {
	Name    string `validate:"required"`
	Address string `validate:"required"`
}

// ComputeDigest returns the digest a broadcast payload must carry: the
// SHA-256 sum of the payload, base64 encoded. Deterministic and
// collision-resistant for integrity checking.
func ComputeDigest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// DeviceRegistry owns the connected-device membership and implements the
// checksum-verified broadcast protocol. Devices are soft deleted: Disconnect
// marks them inactive and the record stays for audit.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices []core.Device
	byID    map[string]int

	events *eventlog.Log
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewDeviceRegistry creates an empty device registry. The event log is
// required; a nil logger defaults to a no-op logger.
func NewDeviceRegistry(events *eventlog.Log, logger *zap.SugaredLogger) *DeviceRegistry {
	if events == nil {
		panic("events is required")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DeviceRegistry{
		devices: make([]core.Device, 0),
		byID:    make(map[string]int),
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

func (r *DeviceRegistry) fail(op string, err error) error {
	r.events.Append(core.EventError, fmt.Sprintf("%s: %v", op, err), "")
	metrics.RegistryErrors.WithLabelValues("device").Inc()
	return err
}

// Connect registers a new active device. The hardware address must be
// unique among currently active devices; a disconnected device's address
// may be reused.
func (r *DeviceRegistry) Connect(name, address string) (core.Device, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	in := connectDeviceInput{Name: name, Address: address}
	if err := validate.Struct(in); err != nil {
		return core.Device{}, r.fail("connect device",
			fmt.Errorf("%w: device name and address must be non-empty", core.ErrValidation))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.devices {
		if d.Active && d.Address == address {
			return core.Device{}, r.fail("connect device",
				fmt.Errorf("%w: address %s already in use by an active device", core.ErrConflict, address))
		}
	}

	device := core.Device{
		ID:       uuid.NewString(),
		Name:     name,
		Address:  address,
		Active:   true,
		LastSync: r.now(),
	}

	r.byID[device.ID] = len(r.devices)
	r.devices = append(r.devices, device)

	r.events.Append(core.EventDeviceSync,
		fmt.Sprintf("device %s joined the mesh", device.Name), device.ID)
	r.logger.Infow("device connected", "device_id", device.ID, "address", device.Address)

	return device.Clone(), nil
}

// Disconnect marks a device inactive. The record remains in the store for
// audit; it is never hard-deleted.
func (r *DeviceRegistry) Disconnect(deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[deviceID]
	if !ok {
		return r.fail("disconnect device",
			fmt.Errorf("%w: device %s", core.ErrNotFound, deviceID))
	}

	r.devices[idx].Active = false
	r.logger.Infow("device disconnected", "device_id", deviceID)
	return nil
}

// ListActive returns a copy of every device that has not been disconnected.
func (r *DeviceRegistry) ListActive() ([]core.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]core.Device, 0)
	for _, d := range r.devices {
		if d.Active {
			active = append(active, d.Clone())
		}
	}
	return active, nil
}

// Broadcast delivers an opaque payload to every active device after
// verifying its integrity. The digest is recomputed here and compared
// against the caller's digest; a mismatch rejects the whole broadcast. The
// active set is captured and the payload applied under one critical
// section, so either every active device receives the payload or none do.
func (r *DeviceRegistry) Broadcast(payload []byte, digest string) error {
	if len(payload) == 0 {
		return r.fail("broadcast",
			fmt.Errorf("%w: payload cannot be empty", core.ErrValidation))
	}

	// Never trust the caller's digest: recompute from the payload.
	if ComputeDigest(payload) != digest {
		metrics.BroadcastsRejected.Inc()
		return r.fail("broadcast",
			fmt.Errorf("%w: payload digest mismatch", core.ErrIntegrity))
	}

	r.mu.Lock()
	now := r.now()
	delivered := 0
	for i := range r.devices {
		if !r.devices[i].Active {
			continue
		}
		cp := make([]byte, len(payload))
		copy(cp, payload)
		r.devices[i].ReceivedPayloads = append(r.devices[i].ReceivedPayloads, cp)
		r.devices[i].LastSync = now
		delivered++
	}
	r.mu.Unlock()

	r.events.Append(core.EventDeviceSync,
		fmt.Sprintf("payload of %d bytes delivered to %d devices", len(payload), delivered), "")
	metrics.BroadcastsDelivered.Inc()
	r.logger.Infow("broadcast delivered", "bytes", len(payload), "devices", delivered)

	return nil
}
