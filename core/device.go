package core

import "time"

// Device represents a connected short-range peer device. Devices are soft
// deleted: Disconnect flips Active to false and the record stays for audit.
// The hardware address must be unique among currently active devices only,
// so a disconnected device's address may be reused.
type Device struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	Active           bool      `json:"active"`
	LastSync         time.Time `json:"last_sync"`
	ReceivedPayloads [][]byte  `json:"received_payloads,omitempty"`
}

// Clone returns a deep copy of the device, including its payload log.
func (d Device) Clone() Device {
	out := d
	if d.ReceivedPayloads != nil {
		out.ReceivedPayloads = make([][]byte, len(d.ReceivedPayloads))
		for i, p := range d.ReceivedPayloads {
			cp := make([]byte, len(p))
			copy(cp, p)
			out.ReceivedPayloads[i] = cp
		}
	}
	return out
}
