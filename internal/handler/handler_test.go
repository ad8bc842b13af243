package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/middlemile/internal/device"
	"github.com/nerrad567/middlemile/internal/infrastructure/memory"
)

var _ Repository = (*memory.Store)(nil)

// scenarioStart is the registered_at of the reference telemetry batch.
var scenarioStart = time.Date(2023, 2, 1, 19, 0, 0, 0, time.UTC)

type recordedBatch struct {
	serial  string
	samples []device.TemperatureSample
}

type fakeRecorder struct {
	mu      sync.Mutex
	batches []recordedBatch
	err     error
}

func (r *fakeRecorder) RecordTemperatureSamples(_ context.Context, d *device.Device, samples []device.TemperatureSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, recordedBatch{serial: d.SerialNumber, samples: samples})
	return r.err
}

type observation struct {
	command string
	outcome string
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (o *fakeObserver) ObserveCommand(command, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observation{command: command, outcome: outcome})
}

type captureLogger struct {
	noopLogger
	mu     sync.Mutex
	warns  []string
	errors []string
}

func (l *captureLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *captureLogger) Error(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func setupScenario(t *testing.T, opts Options) (*Set, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	set := NewSet(store, opts)

	_, err := set.RegisterDeviceGroup.Handle(ctx, device.RegisterDeviceGroup{DeviceGroupSerial: "A1"})
	require.NoError(t, err)

	_, err = set.RegisterDevice.Handle(ctx, device.RegisterDevice{SerialNumber: "C1", DeviceGroupSerial: "A1"})
	require.NoError(t, err)

	_, err = set.SaveDeviceTemperature.Handle(ctx, device.SaveDeviceTemperature{
		SerialNumber: "C1",
		Interval:     300,
		Temperatures: "FFFE00010003FFFE",
		RegisteredAt: scenarioStart,
	})
	require.NoError(t, err)

	return set, store
}

func TestSet_EndToEndAverages(t *testing.T) {
	ctx := context.Background()
	set, _ := setupScenario(t, Options{})

	avg, err := set.DeviceAverageTemperature.Handle(ctx, device.GetDeviceAverageTemperatureDuringPeriod{
		SerialNumber: "C1",
		StartDate:    scenarioStart,
		EndDate:      scenarioStart.Add(900 * time.Second),
	})
	require.NoError(t, err)
	assert.Equal(t, "C1", avg.Device.SerialNumber)
	assert.Equal(t, 4, avg.Average.SampleCount)
	assert.InDelta(t, 0.75, avg.Average.Value, 1e-6)

	group, err := set.DeviceGroupAverageTemperature.Handle(ctx, device.GetDeviceGroupAverageTemperatureDuringPeriod{
		DeviceGroupSerial: "A1",
		StartDate:         scenarioStart,
		EndDate:           scenarioStart.Add(900 * time.Second),
	})
	require.NoError(t, err)
	require.Len(t, group, 1)
	assert.Equal(t, "C1", group[0].Device.SerialNumber)
	assert.InDelta(t, 0.75, group[0].Average.Value, 1e-6)
}

func TestRegisterDevice_ReturnsGroup(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := NewRegisterDeviceGroupHandler(store).Handle(ctx, device.RegisterDeviceGroup{DeviceGroupSerial: "A1"})
	require.NoError(t, err)

	got, err := NewRegisterDeviceHandler(store, store).Handle(ctx, device.RegisterDevice{SerialNumber: "C1", DeviceGroupSerial: "A1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.Device.ID)
	assert.Equal(t, "A1", got.Group.SerialNumber)
	assert.Equal(t, int64(1), got.Group.ID)
}

func TestRegisterDevice_UnknownGroup(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := NewRegisterDeviceHandler(store, store).Handle(ctx, device.RegisterDevice{SerialNumber: "C1", DeviceGroupSerial: "nope"})
	require.ErrorIs(t, err, device.ErrNotFound)

	_, err = store.GetDevice(ctx, "C1")
	assert.ErrorIs(t, err, device.ErrNotFound, "no device may be stored for an unknown group")
	assert.Zero(t, store.Stats().Devices)
}

func TestRegisterDevice_Duplicate(t *testing.T) {
	ctx := context.Background()
	set, _ := setupScenario(t, Options{})

	_, err := set.RegisterDevice.Handle(ctx, device.RegisterDevice{SerialNumber: "C1", DeviceGroupSerial: "A1"})
	assert.Equal(t, device.KindDuplicateKey, device.KindOf(err))
}

func TestRegisterDeviceGroup_Duplicate(t *testing.T) {
	ctx := context.Background()
	set, _ := setupScenario(t, Options{})

	_, err := set.RegisterDeviceGroup.Handle(ctx, device.RegisterDeviceGroup{DeviceGroupSerial: "A1"})
	assert.ErrorIs(t, err, device.ErrDuplicateKey)
}

func TestSaveDeviceTemperature_UnknownDevice(t *testing.T) {
	store := memory.NewStore()

	_, err := NewSaveDeviceTemperatureHandler(store).Handle(context.Background(), device.SaveDeviceTemperature{
		SerialNumber: "ghost",
		Interval:     60,
		Temperatures: "0001",
		RegisteredAt: scenarioStart,
	})
	assert.ErrorIs(t, err, device.ErrNotFound)
}

func TestSaveDeviceTemperature_BadPayloadKeepsHistory(t *testing.T) {
	ctx := context.Background()
	_, store := setupScenario(t, Options{})

	_, err := NewSaveDeviceTemperatureHandler(store).Handle(ctx, device.SaveDeviceTemperature{
		SerialNumber: "C1",
		Interval:     60,
		Temperatures: "0001000",
		RegisteredAt: scenarioStart.Add(time.Hour),
	})
	require.ErrorIs(t, err, device.ErrConversionFailed)

	d, err := store.GetDevice(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, d.Temperatures, 4)
}

func TestSaveDeviceTemperature_EmptyPayload(t *testing.T) {
	ctx := context.Background()
	_, store := setupScenario(t, Options{})

	got, err := NewSaveDeviceTemperatureHandler(store).Handle(ctx, device.SaveDeviceTemperature{
		SerialNumber: "C1",
		Interval:     60,
		RegisteredAt: scenarioStart,
	})
	require.NoError(t, err)
	assert.Zero(t, got.SampleCount)
}

func TestSaveDeviceTemperature_Recorder(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	set, _ := setupScenario(t, Options{Recorder: rec})

	_, err := set.SaveDeviceTemperature.Handle(ctx, device.SaveDeviceTemperature{
		SerialNumber: "C1",
		Interval:     60,
		Temperatures: "000A",
		RegisteredAt: scenarioStart.Add(time.Hour),
	})
	require.NoError(t, err)

	require.Len(t, rec.batches, 2)
	assert.Len(t, rec.batches[0].samples, 4)
	require.Len(t, rec.batches[1].samples, 1, "only the new batch is recorded")
	assert.Equal(t, int16(10), rec.batches[1].samples[0].Temperature)
	assert.Equal(t, "C1", rec.batches[1].serial)
}

func TestSaveDeviceTemperature_RecorderFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{err: errors.New("influx down")}
	logger := &captureLogger{}
	store := memory.NewStore()
	require.NoError(t, store.AddDevice(ctx, device.NewDevice(device.RegisterDevice{SerialNumber: "C1", DeviceGroupSerial: "A1"})))

	h := NewSaveDeviceTemperatureHandler(store)
	h.SetRecorder(rec)
	h.SetLogger(logger)

	got, err := h.Handle(ctx, device.SaveDeviceTemperature{SerialNumber: "C1", Interval: 1, Temperatures: "0001", RegisteredAt: scenarioStart})
	require.NoError(t, err)
	assert.Equal(t, 1, got.SampleCount)
	assert.Len(t, logger.warns, 1)
}

func TestGetDeviceAverageTemperature_NoSamples(t *testing.T) {
	ctx := context.Background()
	set, _ := setupScenario(t, Options{})

	avg, err := set.DeviceAverageTemperature.Handle(ctx, device.GetDeviceAverageTemperatureDuringPeriod{
		SerialNumber: "C1",
		StartDate:    scenarioStart.Add(24 * time.Hour),
		EndDate:      scenarioStart.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, avg.Average.HasData())
}

func TestGetDeviceAverageTemperature_UnknownDevice(t *testing.T) {
	_, err := NewGetDeviceAverageTemperatureHandler(memory.NewStore()).Handle(context.Background(),
		device.GetDeviceAverageTemperatureDuringPeriod{SerialNumber: "ghost"})
	assert.ErrorIs(t, err, device.ErrNotFound)
}

func TestGetDeviceGroupAverageTemperature_UnknownGroup(t *testing.T) {
	got, err := NewGetDeviceGroupAverageTemperatureHandler(memory.NewStore()).Handle(context.Background(),
		device.GetDeviceGroupAverageTemperatureDuringPeriod{DeviceGroupSerial: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInstrument_ReportsOutcome(t *testing.T) {
	ctx := context.Background()
	obs := &fakeObserver{}
	logger := &captureLogger{}
	boom := errors.New("boom")

	h := Instrument[int, int]("double", Func[int, int](func(_ context.Context, n int) (int, error) {
		switch n {
		case 0:
			return 0, fmt.Errorf("zero: %w", device.ErrNotFound)
		case -1:
			return 0, boom
		}
		return n * 2, nil
	}), logger, obs)

	got, err := h.Handle(ctx, 21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = h.Handle(ctx, 0)
	assert.ErrorIs(t, err, device.ErrNotFound)

	_, err = h.Handle(ctx, -1)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []observation{
		{command: "double", outcome: "ok"},
		{command: "double", outcome: "NotFound"},
		{command: "double", outcome: "Internal"},
	}, obs.seen)
	assert.Len(t, logger.warns, 1)
	assert.Len(t, logger.errors, 1)
}

func TestInstrument_NilCollaborators(t *testing.T) {
	h := Instrument[string, string]("echo", Func[string, string](func(_ context.Context, s string) (string, error) {
		return s, nil
	}), nil, nil)

	got, err := h.Handle(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestConcurrentDeviceAndGroupRegistration(t *testing.T) {
	ctx := context.Background()

	for round := 0; round < 50; round++ {
		store := memory.NewStore()
		set := NewSet(store, Options{})
		groupSerial := fmt.Sprintf("G%d", round)

		var wg sync.WaitGroup
		results := make([]error, 8)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = set.RegisterDeviceGroup.Handle(ctx, device.RegisterDeviceGroup{DeviceGroupSerial: groupSerial})
		}()
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = set.RegisterDevice.Handle(ctx, device.RegisterDevice{
					SerialNumber:      fmt.Sprintf("D%d", i),
					DeviceGroupSerial: groupSerial,
				})
			}(i)
		}
		wg.Wait()

		for i, err := range results {
			if err != nil {
				require.ErrorIs(t, err, device.ErrNotFound)
				continue
			}
			d, getErr := store.GetDevice(ctx, fmt.Sprintf("D%d", i))
			require.NoError(t, getErr)
			_, groupErr := store.GetDeviceGroup(ctx, d.DeviceGroupSerialNumber)
			require.NoError(t, groupErr, "a stored device always references an existing group")
		}
	}
}

func TestConcurrentSavesNeverLoseSamples(t *testing.T) {
	ctx := context.Background()
	set, store := setupScenario(t, Options{})

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = set.SaveDeviceTemperature.Handle(ctx, device.SaveDeviceTemperature{
				SerialNumber: "C1",
				Interval:     60,
				Temperatures: "00010002",
				RegisteredAt: scenarioStart.Add(time.Duration(i+1) * time.Hour),
			})
		}(i)
	}
	wg.Wait()

	saved := 0
	for _, err := range errs {
		if err == nil {
			saved++
			continue
		}
		require.ErrorIs(t, err, device.ErrConflict)
	}

	d, err := store.GetDevice(ctx, "C1")
	require.NoError(t, err)
	assert.Len(t, d.Temperatures, 4+2*saved)
}
