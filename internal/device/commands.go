package device

import "time"

// RegisterDevice registers a new device inside an existing device group.
type RegisterDevice struct {
	SerialNumber      string
	DeviceGroupSerial string
}

// SaveDeviceTemperature appends a batch of temperature readings to a device.
//
// Temperatures is a concatenation of 4-character hex chunks. The k-th chunk
// (0-indexed) was checked at RegisteredAt + k*Interval seconds.
type SaveDeviceTemperature struct {
	SerialNumber string
	Interval     int
	Temperatures string
	RegisteredAt time.Time
}

// RegisterDeviceGroup registers a new device group.
type RegisterDeviceGroup struct {
	DeviceGroupSerial string
}

// GetDeviceAverageTemperatureDuringPeriod asks for one device's average
// temperature between StartDate and EndDate (both inclusive).
type GetDeviceAverageTemperatureDuringPeriod struct {
	SerialNumber string
	StartDate    time.Time
	EndDate      time.Time
}

// GetDeviceGroupAverageTemperatureDuringPeriod asks for the average
// temperature of every device in a group between StartDate and EndDate.
type GetDeviceGroupAverageTemperatureDuringPeriod struct {
	DeviceGroupSerial string
	StartDate         time.Time
	EndDate           time.Time
}
