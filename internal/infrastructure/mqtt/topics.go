package mqtt

import (
	"fmt"
	"strings"
)

// TopicPrefix is the root of every middlemile topic.
//
// Topic tree:
//
//	middlemile/telemetry/{serial}/temperature   device → service (telemetry batches)
//	middlemile/telemetry/{serial}/rejected      service → device (batch rejected)
//	middlemile/system/status                    service status, retained, LWT
const TopicPrefix = "middlemile"

// Topics provides builders for middlemile MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.TelemetryTemperature("C48302DDL")
//	// Returns: "middlemile/telemetry/C48302DDL/temperature"
type Topics struct{}

// TelemetryTemperature returns the topic a device publishes its batches to.
func (Topics) TelemetryTemperature(serialNumber string) string {
	return fmt.Sprintf("%s/telemetry/%s/temperature", TopicPrefix, serialNumber)
}

// TelemetryRejected returns the topic on which rejected batches are reported
// back to a device.
func (Topics) TelemetryRejected(serialNumber string) string {
	return fmt.Sprintf("%s/telemetry/%s/rejected", TopicPrefix, serialNumber)
}

// SystemStatus returns the retained service status topic.
func (Topics) SystemStatus() string {
	return TopicPrefix + "/system/status"
}

// AllTelemetryTemperatures returns a pattern matching every device's
// temperature topic.
//
// Pattern: middlemile/telemetry/+/temperature
func (Topics) AllTelemetryTemperatures() string {
	return TopicPrefix + "/telemetry/+/temperature"
}

// WildcardSegment returns the value that matched the single-level wildcard
// in pattern, for example the serial number in a telemetry topic.
//
// Returns false if topic does not match pattern or pattern does not contain
// exactly one "+" segment.
func WildcardSegment(pattern, topic string) (string, bool) {
	patternParts := strings.Split(pattern, "/")
	topicParts := strings.Split(topic, "/")
	if len(patternParts) != len(topicParts) {
		return "", false
	}

	var (
		value string
		found bool
	)
	for i, p := range patternParts {
		switch p {
		case "+":
			if found || topicParts[i] == "" {
				return "", false
			}
			value, found = topicParts[i], true
		case "#":
			return "", false
		default:
			if p != topicParts[i] {
				return "", false
			}
		}
	}
	return value, found
}

// RejectionTopic returns the topic on which a batch received through the
// subscription pattern is reported as rejected. The wildcard is replaced by
// serialNumber and the final segment by "rejected"; when the wildcard is the
// final segment, "rejected" is appended instead.
//
//	RejectionTopic("middlemile/telemetry/+/temperature", "C1")
//	// Returns: "middlemile/telemetry/C1/rejected"
func RejectionTopic(pattern, serialNumber string) string {
	parts := strings.Split(pattern, "/")
	last := len(parts) - 1
	for i, p := range parts {
		if p == "+" {
			parts[i] = serialNumber
			if i == last {
				parts = append(parts, "rejected")
			} else {
				parts[last] = "rejected"
			}
			break
		}
	}
	return strings.Join(parts, "/")
}
