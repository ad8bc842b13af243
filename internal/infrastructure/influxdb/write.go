package influxdb

import (
	"context"
	"fmt"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/middlemile/internal/device"
)

// Point layout for temperature samples.
const (
	measurementTemperature = "device_temperature"
	tagSerialNumber        = "serial_number"
	tagDeviceGroup         = "device_group"
	fieldTemperature       = "temperature"
)

// temperaturePoint builds the point for one sample, stamped with the time
// the reading was taken rather than the time it was written.
func temperaturePoint(d *device.Device, s device.TemperatureSample) *write.Point {
	return write.NewPoint(
		measurementTemperature,
		map[string]string{
			tagSerialNumber: d.SerialNumber,
			tagDeviceGroup:  d.DeviceGroupSerialNumber,
		},
		map[string]interface{}{
			fieldTemperature: int64(s.Temperature),
		},
		s.CheckedAt,
	)
}

// RecordTemperatureSamples queues one point per sample. The write is
// non-blocking; delivery failures arrive through SetOnError.
//
// Returns:
//   - error: ErrNotConnected after Close
func (c *Client) RecordTemperatureSamples(ctx context.Context, d *device.Device, samples []device.TemperatureSample) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("recording temperature samples: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	for _, s := range samples {
		c.writeAPI.WritePoint(temperaturePoint(d, s))
	}
	return nil
}
