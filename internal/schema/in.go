package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/nerrad567/middlemile/internal/device"
)

// DecodeJSON decodes a single JSON document from r into v.
// Syntax and type errors are reported as device.ErrSchema.
func DecodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", device.ErrSchema, err)
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", device.ErrSchema, field)
}

// RegisterDeviceGroupBody is the request body for registering a group.
type RegisterDeviceGroupBody struct {
	DeviceGroupSerial string `json:"deviceGroupSerial"`
}

// ToCommand validates the body.
func (b RegisterDeviceGroupBody) ToCommand() (device.RegisterDeviceGroup, error) {
	if b.DeviceGroupSerial == "" {
		return device.RegisterDeviceGroup{}, missing("deviceGroupSerial")
	}
	return device.RegisterDeviceGroup{DeviceGroupSerial: b.DeviceGroupSerial}, nil
}

// RegisterDeviceBody is the request body for registering a device.
type RegisterDeviceBody struct {
	SerialNumber      string `json:"serialNumber"`
	DeviceGroupSerial string `json:"deviceGroupSerial"`
}

// ToCommand validates the body.
func (b RegisterDeviceBody) ToCommand() (device.RegisterDevice, error) {
	if b.SerialNumber == "" {
		return device.RegisterDevice{}, missing("serialNumber")
	}
	if b.DeviceGroupSerial == "" {
		return device.RegisterDevice{}, missing("deviceGroupSerial")
	}
	return device.RegisterDevice{
		SerialNumber:      b.SerialNumber,
		DeviceGroupSerial: b.DeviceGroupSerial,
	}, nil
}

// TemperatureReport is a telemetry batch without the device serial number.
// MQTT payloads carry only this part; the serial comes from the topic.
type TemperatureReport struct {
	Interval     int    `json:"interval"`
	Temperatures string `json:"temperatures"`
	RegisteredAt string `json:"registered_at"`
}

// ToCommand validates the report and attaches serialNumber.
func (r TemperatureReport) ToCommand(serialNumber string) (device.SaveDeviceTemperature, error) {
	if serialNumber == "" {
		return device.SaveDeviceTemperature{}, missing("serialNumber")
	}
	if r.Interval < 0 {
		return device.SaveDeviceTemperature{}, fmt.Errorf("%w: interval must not be negative", device.ErrSchema)
	}
	registeredAt, err := ParseTimestamp(r.RegisteredAt)
	if err != nil {
		return device.SaveDeviceTemperature{}, err
	}
	return device.SaveDeviceTemperature{
		SerialNumber: serialNumber,
		Interval:     r.Interval,
		Temperatures: r.Temperatures,
		RegisteredAt: registeredAt,
	}, nil
}

// SaveDeviceTemperatureBody is the request body for saving telemetry.
type SaveDeviceTemperatureBody struct {
	SerialNumber string `json:"serialNumber"`
	TemperatureReport
}

// ToCommand validates the body.
func (b SaveDeviceTemperatureBody) ToCommand() (device.SaveDeviceTemperature, error) {
	return b.TemperatureReport.ToCommand(b.SerialNumber)
}

// period parses the startDate and endDate query parameters.
func period(values url.Values) (start, end time.Time, err error) {
	rawStart, rawEnd := values.Get("startDate"), values.Get("endDate")
	if rawStart == "" {
		return start, end, missing("startDate")
	}
	if rawEnd == "" {
		return start, end, missing("endDate")
	}
	if start, err = ParseTimestamp(rawStart); err != nil {
		return start, end, err
	}
	if end, err = ParseTimestamp(rawEnd); err != nil {
		return start, end, err
	}
	return start, end, nil
}

// DeviceAverageQuery parses serialNumber, startDate and endDate from a query
// string.
func DeviceAverageQuery(values url.Values) (device.GetDeviceAverageTemperatureDuringPeriod, error) {
	serial := values.Get("serialNumber")
	if serial == "" {
		return device.GetDeviceAverageTemperatureDuringPeriod{}, missing("serialNumber")
	}
	start, end, err := period(values)
	if err != nil {
		return device.GetDeviceAverageTemperatureDuringPeriod{}, err
	}
	return device.GetDeviceAverageTemperatureDuringPeriod{
		SerialNumber: serial,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// DeviceGroupAverageQuery parses deviceGroupSerial, startDate and endDate
// from a query string.
func DeviceGroupAverageQuery(values url.Values) (device.GetDeviceGroupAverageTemperatureDuringPeriod, error) {
	serial := values.Get("deviceGroupSerial")
	if serial == "" {
		return device.GetDeviceGroupAverageTemperatureDuringPeriod{}, missing("deviceGroupSerial")
	}
	start, end, err := period(values)
	if err != nil {
		return device.GetDeviceGroupAverageTemperatureDuringPeriod{}, err
	}
	return device.GetDeviceGroupAverageTemperatureDuringPeriod{
		DeviceGroupSerial: serial,
		StartDate:         start,
		EndDate:           end,
	}, nil
}
