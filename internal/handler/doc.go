// Package handler binds device commands and queries to the repository.
//
// Every command and query has its own handler type. A handler is built over
// the narrowest set of repository capabilities it needs, so a handler that
// only reads devices cannot register a group:
//
//	store := memory.NewStore()
//	register := handler.NewRegisterDeviceHandler(store, store)
//	result, err := register.Handle(ctx, device.RegisterDevice{
//	    SerialNumber:      "C48302DDL",
//	    DeviceGroupSerial: "A1",
//	})
//
// All handlers satisfy Handler[C, R]. Instrument wraps any Handler with
// logging and an Observer (for example the Prometheus metrics collector)
// without the handler knowing about either.
//
// Set wires every handler to a single Repository and applies Instrument to
// each; transports (HTTP, MQTT) take a *Set.
//
// Errors are returned unchanged from the aggregates and the repository, so
// callers classify them with device.KindOf.
package handler
