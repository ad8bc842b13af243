package schema

import (
	"fmt"
	"time"

	"github.com/nerrad567/middlemile/internal/device"
)

// TimestampLayout is the wire format for inbound timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses s as a UTC timestamp in TimestampLayout.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %w", device.ErrSchema, s, err)
	}
	return t, nil
}
