package handler

import (
	"context"
	"fmt"

	"github.com/nerrad567/middlemile/internal/device"
)

// RegisteredDevice is the result of registering a device.
type RegisteredDevice struct {
	Device *device.Device
	Group  *device.DeviceGroup
}

// RegisterDeviceHandler registers a device inside an existing group.
type RegisterDeviceHandler struct {
	devices device.DevicePersist
	groups  device.DeviceGroupQuery
}

// NewRegisterDeviceHandler creates a RegisterDeviceHandler.
func NewRegisterDeviceHandler(devices device.DevicePersist, groups device.DeviceGroupQuery) *RegisterDeviceHandler {
	return &RegisterDeviceHandler{devices: devices, groups: groups}
}

// Handle looks up the group, then creates and stores the device.
//
// Returns device.ErrNotFound if the group does not exist (nothing is stored)
// and device.ErrDuplicateKey if the serial number is taken.
func (h *RegisterDeviceHandler) Handle(ctx context.Context, cmd device.RegisterDevice) (RegisteredDevice, error) {
	group, err := h.groups.GetDeviceGroup(ctx, cmd.DeviceGroupSerial)
	if err != nil {
		return RegisteredDevice{}, fmt.Errorf("registering device %q: %w", cmd.SerialNumber, err)
	}

	d := device.NewDevice(cmd)
	if err := h.devices.AddDevice(ctx, d); err != nil {
		return RegisteredDevice{}, fmt.Errorf("registering device %q: %w", cmd.SerialNumber, err)
	}

	return RegisteredDevice{Device: d, Group: group}, nil
}

// RegisterDeviceGroupHandler registers a device group.
type RegisterDeviceGroupHandler struct {
	groups device.DeviceGroupPersist
}

// NewRegisterDeviceGroupHandler creates a RegisterDeviceGroupHandler.
func NewRegisterDeviceGroupHandler(groups device.DeviceGroupPersist) *RegisterDeviceGroupHandler {
	return &RegisterDeviceGroupHandler{groups: groups}
}

// Handle creates and stores the group.
// Returns device.ErrDuplicateKey if the serial number is taken.
func (h *RegisterDeviceGroupHandler) Handle(ctx context.Context, cmd device.RegisterDeviceGroup) (*device.DeviceGroup, error) {
	g := device.NewDeviceGroup(cmd)
	if err := h.groups.AddDeviceGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("registering device group %q: %w", cmd.DeviceGroupSerial, err)
	}
	return g, nil
}
