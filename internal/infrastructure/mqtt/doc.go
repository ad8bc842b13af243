// Package mqtt provides MQTT client connectivity for middlemile.
//
// Devices that cannot speak HTTP publish their telemetry batches to the
// broker; the ingest package subscribes through this client. The client
// manages:
//   - Connection with auto-reconnect and subscription restoration
//   - Publishing with QoS validation and payload size limits
//   - A retained status topic plus Last Will and Testament for offline detection
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllTelemetryTemperatures(), 1,
//	    func(topic string, payload []byte) error {
//	        serial, _ := mqtt.WildcardSegment(mqtt.Topics{}.AllTelemetryTemperatures(), topic)
//	        ...
//	    })
//
// TLS (cfg.Broker.TLS) should be enabled whenever the broker is not on the
// local host.
package mqtt
