package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nerrad567/middlemile/internal/device"
)

// Compile-time checks that Store satisfies every repository capability.
var (
	_ device.DevicePersist      = (*Store)(nil)
	_ device.DeviceQuery        = (*Store)(nil)
	_ device.DeviceGroupPersist = (*Store)(nil)
	_ device.DeviceGroupQuery   = (*Store)(nil)
)

// Stats is a point-in-time summary of the store contents.
type Stats struct {
	Devices            int
	DeviceGroups       int
	TemperatureSamples int
}

// Store is a concurrency-safe in-memory repository for devices and device
// groups. The zero value is not usable; construct with NewStore.
type Store struct {
	devicesMu    sync.RWMutex
	devices      []*device.Device
	lastDeviceID int64

	groupsMu    sync.RWMutex
	groups      []*device.DeviceGroup
	lastGroupID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		devices: make([]*device.Device, 0),
		groups:  make([]*device.DeviceGroup, 0),
	}
}

// AddDevice assigns the next device identity to d and stores a copy.
func (s *Store) AddDevice(ctx context.Context, d *device.Device) error {
	_ = ctx
	if d == nil {
		return fmt.Errorf("adding device: nil device")
	}

	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()

	s.lastDeviceID++
	id := s.lastDeviceID

	for _, existing := range s.devices {
		if existing.SerialNumber == d.SerialNumber {
			return fmt.Errorf("adding device %q: %w", d.SerialNumber, device.ErrDuplicateKey)
		}
	}

	stored := d.DeepCopy()
	stored.ID = id
	stored.Revision = 1
	for i := range stored.Temperatures {
		stored.Temperatures[i].DeviceID = id
	}
	s.devices = append(s.devices, stored)

	d.ID = id
	d.Revision = stored.Revision
	for i := range d.Temperatures {
		d.Temperatures[i].DeviceID = id
	}
	return nil
}

// UpdateDevice replaces the stored device that has d.ID with a copy of d.
func (s *Store) UpdateDevice(ctx context.Context, d *device.Device) error {
	_ = ctx
	if d == nil {
		return fmt.Errorf("updating device: nil device")
	}

	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()

	for i, existing := range s.devices {
		if existing.ID != d.ID {
			continue
		}
		if d.Revision != existing.Revision {
			return fmt.Errorf("updating device %d at revision %d (stored %d): %w",
				d.ID, d.Revision, existing.Revision, device.ErrConflict)
		}

		stored := d.DeepCopy()
		stored.Revision = existing.Revision + 1
		s.devices[i] = stored
		d.Revision = stored.Revision
		return nil
	}

	return fmt.Errorf("updating device %d: %w", d.ID, device.ErrNotFound)
}

// GetDevice returns a copy of the device with the given serial number.
func (s *Store) GetDevice(ctx context.Context, serialNumber string) (*device.Device, error) {
	_ = ctx

	s.devicesMu.RLock()
	defer s.devicesMu.RUnlock()

	for _, d := range s.devices {
		if d.SerialNumber == serialNumber {
			return d.DeepCopy(), nil
		}
	}
	return nil, fmt.Errorf("device %q: %w", serialNumber, device.ErrNotFound)
}

// ListDevicesByGroup returns copies of the devices in the group, in
// insertion order.
func (s *Store) ListDevicesByGroup(ctx context.Context, deviceGroupSerial string) ([]*device.Device, error) {
	_ = ctx

	s.devicesMu.RLock()
	defer s.devicesMu.RUnlock()

	result := make([]*device.Device, 0)
	for _, d := range s.devices {
		if d.DeviceGroupSerialNumber == deviceGroupSerial {
			result = append(result, d.DeepCopy())
		}
	}
	return result, nil
}

// AddDeviceGroup assigns the next group identity to g and stores a copy.
func (s *Store) AddDeviceGroup(ctx context.Context, g *device.DeviceGroup) error {
	_ = ctx
	if g == nil {
		return fmt.Errorf("adding device group: nil group")
	}

	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()

	s.lastGroupID++
	id := s.lastGroupID

	for _, existing := range s.groups {
		if existing.SerialNumber == g.SerialNumber {
			return fmt.Errorf("adding device group %q: %w", g.SerialNumber, device.ErrDuplicateKey)
		}
	}

	stored := g.DeepCopy()
	stored.ID = id
	s.groups = append(s.groups, stored)

	g.ID = id
	return nil
}

// GetDeviceGroup returns a copy of the group with the given serial number.
func (s *Store) GetDeviceGroup(ctx context.Context, serialNumber string) (*device.DeviceGroup, error) {
	_ = ctx

	s.groupsMu.RLock()
	defer s.groupsMu.RUnlock()

	for _, g := range s.groups {
		if g.SerialNumber == serialNumber {
			return g.DeepCopy(), nil
		}
	}
	return nil, fmt.Errorf("device group %q: %w", serialNumber, device.ErrNotFound)
}

// Stats returns the current number of records in each collection.
func (s *Store) Stats() Stats {
	var st Stats

	s.devicesMu.RLock()
	st.Devices = len(s.devices)
	for _, d := range s.devices {
		st.TemperatureSamples += len(d.Temperatures)
	}
	s.devicesMu.RUnlock()

	s.groupsMu.RLock()
	st.DeviceGroups = len(s.groups)
	s.groupsMu.RUnlock()

	return st
}
