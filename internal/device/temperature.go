package device

import (
	"fmt"
	"strconv"
	"time"
)

// hexChunkSize is the number of hex characters encoding one reading.
const hexChunkSize = 4

// Sample timestamps must stay within years 0000 to 9999, the range that
// time.Time can encode as RFC 3339.
var (
	minCheckedAtUnix = time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxCheckedAtUnix = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// TemperatureSample is one decoded temperature reading.
type TemperatureSample struct {
	DeviceID    int64
	Temperature int16
	CheckedAt   time.Time
}

// AverageTemperature is the mean of the samples inside a time window.
//
// A window without samples has SampleCount 0 and Value 0. Callers must check
// HasData rather than interpret Value on its own.
type AverageTemperature struct {
	Value       float32
	SampleCount int
}

// HasData reports whether at least one sample fell inside the window.
func (a AverageTemperature) HasData() bool {
	return a.SampleCount > 0
}

// DecodeTemperature decodes one 4-character hex chunk as a two's-complement
// signed 16-bit value ("FFFE" is -2).
//
// Returns ErrConversionFailed if the chunk is not exactly four hex digits.
func DecodeTemperature(chunk string) (int16, error) {
	if len(chunk) != hexChunkSize {
		return 0, fmt.Errorf("%w: chunk %q has length %d, want %d", ErrConversionFailed, chunk, len(chunk), hexChunkSize)
	}

	v, err := strconv.ParseUint(chunk, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: chunk %q: %w", ErrConversionFailed, chunk, err)
	}

	return int16(v), nil //nolint:gosec // reinterpreting the 16 bits is the decoding rule
}

// DecodeTemperatures splits payload into consecutive 4-character chunks and
// decodes each one. Sample k is stamped registeredAt + k*interval seconds.
//
// Nothing is returned unless every chunk decodes; a trailing partial chunk
// fails the whole payload. A batch whose last timestamp would fall outside
// years 0000 to 9999 fails with ErrConversionFailed as well.
func DecodeTemperatures(deviceID int64, payload string, registeredAt time.Time, interval int) ([]TemperatureSample, error) {
	count := (len(payload) + hexChunkSize - 1) / hexChunkSize
	if count > 1 && !offsetInRange(registeredAt.Unix(), int64(interval), int64(count-1)) {
		return nil, fmt.Errorf("%w: %d readings at %ds intervals from %s leave the supported time range",
			ErrConversionFailed, count, interval, registeredAt.UTC().Format(time.RFC3339))
	}

	samples := make([]TemperatureSample, 0, count)
	base, nsec := registeredAt.Unix(), int64(registeredAt.Nanosecond())

	for k := 0; k < count; k++ {
		start := k * hexChunkSize
		end := min(start+hexChunkSize, len(payload))

		value, err := DecodeTemperature(payload[start:end])
		if err != nil {
			return nil, fmt.Errorf("decoding reading %d: %w", k, err)
		}

		samples = append(samples, TemperatureSample{
			DeviceID:    deviceID,
			Temperature: value,
			CheckedAt:   time.Unix(base+int64(interval)*int64(k), nsec).UTC(),
		})
	}

	return samples, nil
}

// offsetInRange reports whether base + interval*last, in Unix seconds, lies
// between minCheckedAtUnix and maxCheckedAtUnix. Both bounds are checked by
// division so the product is never computed when it could overflow.
func offsetInRange(base, interval, last int64) bool {
	if base < minCheckedAtUnix || base > maxCheckedAtUnix {
		return false
	}
	switch {
	case interval > 0:
		return interval <= (maxCheckedAtUnix-base)/last
	case interval < 0:
		return interval >= -((base - minCheckedAtUnix) / last)
	default:
		return true
	}
}

// averageOf returns the mean of samples checked inside [start, end].
func averageOf(samples []TemperatureSample, start, end time.Time) AverageTemperature {
	var sum int64
	var n int
	for _, s := range samples {
		if s.CheckedAt.Before(start) || s.CheckedAt.After(end) {
			continue
		}
		sum += int64(s.Temperature)
		n++
	}

	if n == 0 {
		return AverageTemperature{}
	}
	return AverageTemperature{
		Value:       float32(float64(sum) / float64(n)),
		SampleCount: n,
	}
}
