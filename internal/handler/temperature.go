package handler

import (
	"context"
	"fmt"

	"github.com/nerrad567/middlemile/internal/device"
)

// DeviceStore is the capability set needed to change a stored device.
type DeviceStore interface {
	device.DevicePersist
	device.DeviceQuery
}

// SavedTemperatures reports a successful save.
type SavedTemperatures struct {
	SerialNumber string
	SampleCount  int
}

// SaveDeviceTemperatureHandler appends a telemetry batch to a device.
type SaveDeviceTemperatureHandler struct {
	devices  DeviceStore
	recorder SampleRecorder
	logger   Logger
}

// NewSaveDeviceTemperatureHandler creates a SaveDeviceTemperatureHandler.
func NewSaveDeviceTemperatureHandler(devices DeviceStore) *SaveDeviceTemperatureHandler {
	return &SaveDeviceTemperatureHandler{
		devices:  devices,
		recorder: noopRecorder{},
		logger:   noopLogger{},
	}
}

// SetRecorder sets the sink that receives every saved batch.
func (h *SaveDeviceTemperatureHandler) SetRecorder(r SampleRecorder) {
	h.recorder = r
}

// SetLogger sets the logger for the handler.
func (h *SaveDeviceTemperatureHandler) SetLogger(logger Logger) {
	h.logger = logger
}

// Handle loads the device, decodes and appends the batch, and stores the
// result.
//
// Returns device.ErrNotFound for an unknown serial number,
// device.ErrConversionFailed for a malformed payload and device.ErrConflict if
// another save for the same device completed in between. Recorder failures are
// logged and do not fail the save.
func (h *SaveDeviceTemperatureHandler) Handle(ctx context.Context, cmd device.SaveDeviceTemperature) (SavedTemperatures, error) {
	d, err := h.devices.GetDevice(ctx, cmd.SerialNumber)
	if err != nil {
		return SavedTemperatures{}, fmt.Errorf("saving temperatures: %w", err)
	}

	before := len(d.Temperatures)
	if err := d.SaveTemperatures(cmd); err != nil {
		return SavedTemperatures{}, fmt.Errorf("saving temperatures for %q: %w", cmd.SerialNumber, err)
	}

	if err := h.devices.UpdateDevice(ctx, d); err != nil {
		return SavedTemperatures{}, fmt.Errorf("saving temperatures for %q: %w", cmd.SerialNumber, err)
	}

	added := d.Temperatures[before:]
	if len(added) > 0 {
		if err := h.recorder.RecordTemperatureSamples(ctx, d, added); err != nil {
			h.logger.Warn("recording temperature samples failed",
				"serial_number", d.SerialNumber,
				"samples", len(added),
				"error", err,
			)
		}
	}

	return SavedTemperatures{SerialNumber: d.SerialNumber, SampleCount: len(added)}, nil
}

// DeviceAverage pairs a device with its average over the requested window.
type DeviceAverage struct {
	Device  *device.Device
	Average device.AverageTemperature
}

// GetDeviceAverageTemperatureHandler averages one device's history.
type GetDeviceAverageTemperatureHandler struct {
	devices device.DeviceQuery
}

// NewGetDeviceAverageTemperatureHandler creates a GetDeviceAverageTemperatureHandler.
func NewGetDeviceAverageTemperatureHandler(devices device.DeviceQuery) *GetDeviceAverageTemperatureHandler {
	return &GetDeviceAverageTemperatureHandler{devices: devices}
}

// Handle returns the device and its average between StartDate and EndDate.
// Returns device.ErrNotFound for an unknown serial number.
func (h *GetDeviceAverageTemperatureHandler) Handle(ctx context.Context, q device.GetDeviceAverageTemperatureDuringPeriod) (DeviceAverage, error) {
	d, err := h.devices.GetDevice(ctx, q.SerialNumber)
	if err != nil {
		return DeviceAverage{}, fmt.Errorf("averaging temperature: %w", err)
	}

	return DeviceAverage{
		Device:  d,
		Average: d.AverageTemperatureInPeriod(q.StartDate, q.EndDate),
	}, nil
}

// GetDeviceGroupAverageTemperatureHandler averages every device in a group.
type GetDeviceGroupAverageTemperatureHandler struct {
	devices device.DeviceQuery
}

// NewGetDeviceGroupAverageTemperatureHandler creates a GetDeviceGroupAverageTemperatureHandler.
func NewGetDeviceGroupAverageTemperatureHandler(devices device.DeviceQuery) *GetDeviceGroupAverageTemperatureHandler {
	return &GetDeviceGroupAverageTemperatureHandler{devices: devices}
}

// Handle returns one entry per device in the group, in store order.
// An unknown or empty group yields an empty list, not an error.
func (h *GetDeviceGroupAverageTemperatureHandler) Handle(ctx context.Context, q device.GetDeviceGroupAverageTemperatureDuringPeriod) ([]DeviceAverage, error) {
	devices, err := h.devices.ListDevicesByGroup(ctx, q.DeviceGroupSerial)
	if err != nil {
		return nil, fmt.Errorf("averaging group %q: %w", q.DeviceGroupSerial, err)
	}

	result := make([]DeviceAverage, 0, len(devices))
	for _, d := range devices {
		result = append(result, DeviceAverage{
			Device:  d,
			Average: d.AverageTemperatureInPeriod(q.StartDate, q.EndDate),
		})
	}
	return result, nil
}
