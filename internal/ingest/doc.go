// Package ingest feeds telemetry published over MQTT into the
// SaveDeviceTemperature handler.
//
// Devices publish a JSON batch to middlemile/telemetry/{serial}/temperature:
//
//	{"interval": 300, "temperatures": "FFFE00010003FFFE", "registered_at": "2023-02-01 19:00:00"}
//
// The serial number is taken from the topic. MQTT has no reply channel, so a
// rejected batch is reported on mqtt.RejectionTopic of the subscription
// pattern (middlemile/telemetry/{serial}/rejected by default) with the same
// {"error": "<Kind>"} body the HTTP API uses.
package ingest
