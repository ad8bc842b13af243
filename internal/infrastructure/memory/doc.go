// Package memory provides the in-process implementation of the device
// repository port.
//
// A Store keeps one ordered collection per aggregate type, each guarded by its
// own read/write lock and identity counter. Identity assignment, the serial
// number uniqueness check and the insert happen inside a single exclusive
// critical section, so two concurrent registrations of the same serial number
// produce exactly one success.
//
// Identities start at 1. A rejected duplicate still consumes an identity, so
// the sequence of stored identities is increasing but may have gaps.
//
// Nothing is persisted; the contents are lost when the process exits.
package memory
