// Package schema defines the wire representation of device commands, queries
// and results, and converts between it and the device package types.
//
// Inbound values (request bodies, query strings, MQTT payloads) are validated
// on conversion; any malformed input is reported as device.ErrSchema.
// Timestamps on the wire use the layout "2006-01-02 15:04:05" and are always
// interpreted as UTC.
package schema
