package mqtt

import (
	"fmt"
)

// maxPayloadSize caps outgoing payloads at 1MB.
const maxPayloadSize = 1 << 20

// Publish sends payload to topic and waits for the broker to acknowledge it.
//
// Rejection notices are sent with retained=false; only the service status
// topic is retained.
//
//	topic := mqtt.RejectionTopic(mqtt.Topics{}.AllTelemetryTemperatures(), "C1")
//	err := client.Publish(topic, []byte(`{"error":"ConversionFailed"}`), 1, false)
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	return awaitToken(c.client.Publish(topic, qos, retained, payload), ErrPublishFailed)
}
