package device

import "context"

// The repository port is split into capabilities so that each handler can
// ask for exactly what it uses. One adapter may implement all of them.
//
// Implementations must be safe for concurrent use, must hand out copies that
// the caller may mutate freely, and must report failures with the package
// sentinel errors (ErrNotFound, ErrDuplicateKey, ErrConflict).

// DevicePersist stores devices.
type DevicePersist interface {
	// AddDevice assigns a fresh identity to d and stores a copy of it.
	// Returns ErrDuplicateKey if a device with the same serial number exists;
	// d.ID is left untouched in that case.
	AddDevice(ctx context.Context, d *Device) error

	// UpdateDevice replaces the stored device that has d.ID.
	// Returns ErrNotFound if no device has that identity and ErrConflict if
	// d.Revision is older than the stored revision. On success d.Revision is
	// advanced to match the stored copy.
	UpdateDevice(ctx context.Context, d *Device) error
}

// DeviceQuery reads devices.
type DeviceQuery interface {
	// GetDevice returns the device with the given serial number.
	// Returns ErrNotFound if there is none.
	GetDevice(ctx context.Context, serialNumber string) (*Device, error)

	// ListDevicesByGroup returns every device that references the group
	// serial number, in store scan order. An unknown group yields an empty list.
	ListDevicesByGroup(ctx context.Context, deviceGroupSerial string) ([]*Device, error)
}

// DeviceGroupPersist stores device groups.
type DeviceGroupPersist interface {
	// AddDeviceGroup assigns a fresh identity to g and stores a copy of it.
	// Returns ErrDuplicateKey if a group with the same serial number exists.
	AddDeviceGroup(ctx context.Context, g *DeviceGroup) error
}

// DeviceGroupQuery reads device groups.
type DeviceGroupQuery interface {
	// GetDeviceGroup returns the group with the given serial number.
	// Returns ErrNotFound if there is none.
	GetDeviceGroup(ctx context.Context, serialNumber string) (*DeviceGroup, error)
}
