// Package api implements the HTTP REST API for the device service.
//
// This package provides:
//   - Device group registration and group average temperature
//   - Device registration, telemetry upload and device average temperature
//   - Health and Prometheus metrics endpoints
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//
// # Wire format
//
// Successful responses are wrapped in {"msg": "success", "data": ...}.
// Failures carry {"error": "<Kind>"} where Kind is one of NotFound,
// DuplicateKeyError, ConversionFailed, SchemaError, Conflict or Internal.
// Timestamps in requests use the "2006-01-02 15:04:05" layout in UTC.
package api
