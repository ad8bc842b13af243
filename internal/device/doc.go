// Package device holds the Device and DeviceGroup aggregates for middlemile.
//
// The aggregates own the only business rules of the service: decoding the
// hex-encoded temperature payloads that devices report, and averaging the
// recorded samples over a time window. Everything else (storage, transport,
// metrics) lives in other packages and talks to the aggregates through the
// command and query values declared here.
//
// # Key Types
//
//   - Device: a registered sensor with its ordered temperature history
//   - DeviceGroup: a named collection that devices reference by serial number
//   - TemperatureSample: one decoded reading with its check timestamp
//   - AverageTemperature: the result of a windowed average, including "no data"
//
// # Repository Port
//
// Persistence is expressed as narrow capability interfaces (DevicePersist,
// DeviceQuery, DeviceGroupPersist, DeviceGroupQuery). A handler depends only
// on the capabilities it uses; a single adapter may satisfy all of them.
//
// # Temperature Payloads
//
// A payload is a string of 4-character hex chunks, each a two's-complement
// 16-bit value:
//
//	"FFFE00010003FFFE" -> -2, 1, 3, -2
//
// With interval=300 and registeredAt=T the samples are checked at T, T+300s,
// T+600s and T+900s.
//
// # Thread Safety
//
// Aggregates are plain values and are not safe for concurrent mutation.
// Repositories hand out independent copies, so callers never share one.
package device
