package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrNotFound) {
//	    // handle not found case
//	}
var (
	// ErrNotFound is returned when a referenced device or device group does not exist.
	ErrNotFound = errors.New("device: not found")

	// ErrDuplicateKey is returned when a serial number is already registered.
	ErrDuplicateKey = errors.New("device: duplicate serial number")

	// ErrConversionFailed is returned when a temperature payload is not valid hex.
	ErrConversionFailed = errors.New("device: temperature conversion failed")

	// ErrSchema is returned by transports when external input is malformed.
	// The aggregates never produce it.
	ErrSchema = errors.New("device: malformed input")

	// ErrConflict is returned when an update is based on a stale revision.
	ErrConflict = errors.New("device: concurrent update")
)

// Kind classifies an error for transports that translate it into a status.
type Kind string

// Error kinds.
const (
	KindNone             Kind = ""
	KindNotFound         Kind = "NotFound"
	KindDuplicateKey     Kind = "DuplicateKeyError"
	KindConversionFailed Kind = "ConversionFailed"
	KindSchema           Kind = "SchemaError"
	KindConflict         Kind = "Conflict"
	KindInternal         Kind = "Internal"
)

// KindOf returns the Kind of err.
// Errors that do not wrap one of the package sentinels are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicateKey):
		return KindDuplicateKey
	case errors.Is(err, ErrConversionFailed):
		return KindConversionFailed
	case errors.Is(err, ErrSchema):
		return KindSchema
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}
