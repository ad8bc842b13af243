package device

import (
	"time"
)

// Device is a registered temperature sensor and its recorded history.
type Device struct {
	// ID is assigned by the repository on insert. Zero means unset.
	ID int64

	// DeviceGroupSerialNumber references the owning group's serial number.
	// It is checked when the device is registered and never again.
	DeviceGroupSerialNumber string

	// SerialNumber is the externally supplied business key.
	SerialNumber string

	// CreatedAt is the registration time (UTC).
	CreatedAt time.Time

	// Temperatures holds every saved sample in append order.
	Temperatures []TemperatureSample

	// Revision is maintained by the repository and bumped on every update.
	// An update carrying an older revision is rejected with ErrConflict.
	Revision uint64
}

// NewDevice builds an unsaved device from a registration command.
// The device has no samples and no identity until it is added to a repository.
func NewDevice(cmd RegisterDevice) *Device {
	return &Device{
		DeviceGroupSerialNumber: cmd.DeviceGroupSerial,
		SerialNumber:            cmd.SerialNumber,
		CreatedAt:               time.Now().UTC(),
	}
}

// SaveTemperatures decodes cmd.Temperatures and appends the batch to the
// device history.
//
// The whole payload is decoded before anything is appended, so a payload
// with a bad chunk leaves the history unchanged.
//
// Returns ErrConversionFailed if any chunk is malformed.
func (d *Device) SaveTemperatures(cmd SaveDeviceTemperature) error {
	samples, err := DecodeTemperatures(d.ID, cmd.Temperatures, cmd.RegisteredAt, cmd.Interval)
	if err != nil {
		return err
	}

	d.Temperatures = append(d.Temperatures, samples...)
	return nil
}

// AverageTemperatureInPeriod averages the samples checked between start and
// end, both inclusive. See AverageTemperature for the empty-window result.
func (d *Device) AverageTemperatureInPeriod(start, end time.Time) AverageTemperature {
	return averageOf(d.Temperatures, start, end)
}

// DeepCopy returns a copy of the device that shares no memory with d.
func (d *Device) DeepCopy() *Device {
	if d == nil {
		return nil
	}

	cp := *d
	if d.Temperatures != nil {
		cp.Temperatures = make([]TemperatureSample, len(d.Temperatures))
		copy(cp.Temperatures, d.Temperatures)
	}
	return &cp
}
