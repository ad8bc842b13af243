package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/middlemile/internal/device"
	"github.com/nerrad567/middlemile/internal/infrastructure/memory"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}
	return byName
}

func labelsOf(m *dto.Metric) map[string]string {
	out := make(map[string]string)
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}

func TestCollector_ObserveCommand(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, nil)
	require.NoError(t, err)

	c.ObserveCommand("register_device", "ok", 10*time.Millisecond)
	c.ObserveCommand("register_device", "ok", 20*time.Millisecond)
	c.ObserveCommand("register_device", "NotFound", time.Millisecond)

	families := gather(t, reg)

	commands := families["middlemile_commands_total"]
	require.NotNil(t, commands)
	counts := make(map[string]float64)
	for _, m := range commands.GetMetric() {
		l := labelsOf(m)
		assert.Equal(t, "register_device", l["command"])
		counts[l["outcome"]] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"ok": 2, "NotFound": 1}, counts)

	duration := families["middlemile_command_duration_seconds"]
	require.NotNil(t, duration)
	require.Len(t, duration.GetMetric(), 1)
	assert.Equal(t, uint64(3), duration.GetMetric()[0].GetHistogram().GetSampleCount())

	assert.NotContains(t, families, "middlemile_devices")
}

func TestCollector_StoreGauges(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	_, err := New(reg, store)
	require.NoError(t, err)

	require.NoError(t, store.AddDeviceGroup(ctx, device.NewDeviceGroup(device.RegisterDeviceGroup{DeviceGroupSerial: "A1"})))
	d := device.NewDevice(device.RegisterDevice{SerialNumber: "C1", DeviceGroupSerial: "A1"})
	require.NoError(t, d.SaveTemperatures(device.SaveDeviceTemperature{Interval: 60, Temperatures: "000100020003", RegisteredAt: time.Now()}))
	require.NoError(t, store.AddDevice(ctx, d))

	families := gather(t, reg)
	assert.Equal(t, float64(1), families["middlemile_devices"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, float64(1), families["middlemile_device_groups"].GetMetric()[0].GetGauge().GetValue())
	assert.Equal(t, float64(3), families["middlemile_temperature_samples"].GetMetric()[0].GetGauge().GetValue())
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, nil)
	require.NoError(t, err)

	_, err = New(reg, nil)
	assert.Error(t, err)
}
