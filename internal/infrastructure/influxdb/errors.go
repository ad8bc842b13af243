package influxdb

import "errors"

var (
	// ErrNotConnected is returned once the client has been closed.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed is returned by Connect when the server does not
	// answer its health check.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrDisabled is returned by Connect when the sample mirror is switched
	// off, so callers can run without it.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
