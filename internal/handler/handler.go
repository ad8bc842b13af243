package handler

import (
	"context"
	"time"

	"github.com/nerrad567/middlemile/internal/device"
)

// Handler executes one command or query of type C and returns R.
type Handler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Func adapts a plain function to the Handler interface.
type Func[C, R any] func(ctx context.Context, cmd C) (R, error)

// Handle calls f.
func (f Func[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// Logger defines the logging interface used by handlers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Observer is notified after every instrumented call.
// outcome is "ok" on success, otherwise the device.Kind of the error.
type Observer interface {
	ObserveCommand(command, outcome string, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveCommand(string, string, time.Duration) {}

// SampleRecorder mirrors freshly saved temperature samples to a secondary
// sink such as a time-series database.
type SampleRecorder interface {
	RecordTemperatureSamples(ctx context.Context, d *device.Device, samples []device.TemperatureSample) error
}

type noopRecorder struct{}

func (noopRecorder) RecordTemperatureSamples(context.Context, *device.Device, []device.TemperatureSample) error {
	return nil
}

// Outcome returns the label used for err in logs and metrics.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(device.KindOf(err))
}
