package handler

import (
	"context"
	"time"

	"github.com/nerrad567/middlemile/internal/device"
)

// Instrument wraps h so that every call is timed, reported to obs and logged
// under the given command name. A nil logger or observer is ignored.
//
// Failures caused by the caller (not found, duplicates, bad payloads,
// conflicts) are logged at Warn; anything else at Error.
func Instrument[C, R any](name string, h Handler[C, R], logger Logger, obs Observer) Handler[C, R] {
	if logger == nil {
		logger = noopLogger{}
	}
	if obs == nil {
		obs = noopObserver{}
	}

	return Func[C, R](func(ctx context.Context, cmd C) (R, error) {
		start := time.Now()
		result, err := h.Handle(ctx, cmd)
		elapsed := time.Since(start)

		outcome := Outcome(err)
		obs.ObserveCommand(name, outcome, elapsed)

		switch device.KindOf(err) {
		case device.KindNone:
			logger.Debug("command handled", "command", name, "duration", elapsed)
		case device.KindInternal:
			logger.Error("command failed", "command", name, "outcome", outcome, "error", err)
		default:
			logger.Warn("command rejected", "command", name, "outcome", outcome, "error", err)
		}

		return result, err
	})
}
