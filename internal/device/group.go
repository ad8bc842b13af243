package device

import "time"

// DeviceGroup is a named collection of devices, keyed by its serial number.
// Groups are immutable once registered.
type DeviceGroup struct { //nolint:revive // device.DeviceGroup is clearer than device.Group in calling code
	// ID is assigned by the repository on insert. Zero means unset.
	ID int64

	// SerialNumber is the externally supplied business key.
	SerialNumber string

	// CreatedAt is the registration time (UTC).
	CreatedAt time.Time
}

// NewDeviceGroup builds an unsaved group from a registration command.
func NewDeviceGroup(cmd RegisterDeviceGroup) *DeviceGroup {
	return &DeviceGroup{
		SerialNumber: cmd.DeviceGroupSerial,
		CreatedAt:    time.Now().UTC(),
	}
}

// DeepCopy returns an independent copy of the group.
func (g *DeviceGroup) DeepCopy() *DeviceGroup {
	if g == nil {
		return nil
	}
	cp := *g
	return &cp
}
