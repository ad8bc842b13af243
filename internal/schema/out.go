package schema

import (
	"time"

	"github.com/nerrad567/middlemile/internal/device"
)

// MsgSuccess is the msg value of every successful response.
const MsgSuccess = "success"

// Envelope wraps every successful response body.
type Envelope[T any] struct {
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

// Success wraps data in a success envelope.
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Msg: MsgSuccess, Data: data}
}

// ErrorOut is the body of every failed response.
type ErrorOut struct {
	Error device.Kind `json:"error"`
}

// DeviceGroupOut is the wire form of a device group.
type DeviceGroupOut struct {
	DeviceGroupID int64     `json:"deviceGroupId"`
	SerialNumber  string    `json:"serialNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewDeviceGroupOut converts g.
func NewDeviceGroupOut(g *device.DeviceGroup) DeviceGroupOut {
	return DeviceGroupOut{
		DeviceGroupID: g.ID,
		SerialNumber:  g.SerialNumber,
		CreatedAt:     g.CreatedAt,
	}
}

// DeviceOut is the wire form of a registered device and its group.
type DeviceOut struct {
	DeviceID     int64          `json:"deviceId"`
	SerialNumber string         `json:"serialNumber"`
	DeviceGroup  DeviceGroupOut `json:"deviceGroup"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// NewDeviceOut converts d and its group g.
func NewDeviceOut(d *device.Device, g *device.DeviceGroup) DeviceOut {
	return DeviceOut{
		DeviceID:     d.ID,
		SerialNumber: d.SerialNumber,
		DeviceGroup:  NewDeviceGroupOut(g),
		CreatedAt:    d.CreatedAt,
	}
}

// SavedTemperaturesOut acknowledges a telemetry batch.
type SavedTemperaturesOut struct {
	SerialNumber string `json:"serialNumber"`
	SavedSamples int    `json:"savedSamples"`
}

// AverageTemperatureOut is one device's average over a window.
// AverageTemperature is null when no sample fell inside the window.
type AverageTemperatureOut struct {
	ID                 int64    `json:"id"`
	SerialNumber       string   `json:"serialNumber"`
	AverageTemperature *float32 `json:"averageTemperature"`
}

// NewAverageTemperatureOut converts d and its average.
func NewAverageTemperatureOut(d *device.Device, avg device.AverageTemperature) AverageTemperatureOut {
	out := AverageTemperatureOut{
		ID:           d.ID,
		SerialNumber: d.SerialNumber,
	}
	if avg.HasData() {
		v := avg.Value
		out.AverageTemperature = &v
	}
	return out
}
