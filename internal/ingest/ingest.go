package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nerrad567/middlemile/internal/device"
	"github.com/nerrad567/middlemile/internal/handler"
	"github.com/nerrad567/middlemile/internal/infrastructure/mqtt"
	"github.com/nerrad567/middlemile/internal/schema"
)

// ErrInvalidTopic is returned when the subscription pattern cannot yield a
// serial number.
var ErrInvalidTopic = errors.New("ingest: topic must contain exactly one '+' segment and no '#'")

// Subscriber is the part of the MQTT client the ingester uses.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// SaveHandler stores one telemetry batch.
type SaveHandler = handler.Handler[device.SaveDeviceTemperature, handler.SavedTemperatures]

// Logger defines the logging interface used by the ingester.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Ingester subscribes to telemetry topics and saves each batch.
type Ingester struct {
	sub    Subscriber
	save   SaveHandler
	topic  string
	qos    byte
	logger Logger

	mu      sync.Mutex
	ctx     context.Context
	running bool
}

// New creates an Ingester for the given topic pattern.
//
// Returns ErrInvalidTopic unless topic has exactly one single-level wildcard
// occupying a whole segment, which is where the device serial number is read
// from. Rejections go to mqtt.RejectionTopic(topic, serial), which must not
// itself match topic.
func New(sub Subscriber, save SaveHandler, topic string, qos byte) (*Ingester, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	return &Ingester{
		sub:    sub,
		save:   save,
		topic:  topic,
		qos:    qos,
		logger: noopLogger{},
		ctx:    context.Background(),
	}, nil
}

// SetLogger sets the logger for the ingester.
func (i *Ingester) SetLogger(logger Logger) {
	i.logger = logger
}

// Start subscribes to the telemetry topic. Batches are saved under ctx.
func (i *Ingester) Start(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running {
		return nil
	}
	i.ctx = ctx

	if err := i.sub.Subscribe(i.topic, i.qos, i.handleMessage); err != nil {
		return fmt.Errorf("subscribing to %s: %w", i.topic, err)
	}
	i.running = true
	return nil
}

// Stop unsubscribes from the telemetry topic.
func (i *Ingester) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running {
		return nil
	}
	i.running = false

	if err := i.sub.Unsubscribe(i.topic); err != nil {
		return fmt.Errorf("unsubscribing from %s: %w", i.topic, err)
	}
	return nil
}

func validateTopic(topic string) error {
	wildcards := 0
	for _, seg := range strings.Split(topic, "/") {
		switch {
		case seg == "+":
			wildcards++
		case strings.ContainsAny(seg, "+#"):
			return fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
		}
	}
	if wildcards != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}

	// A rejection the ingester can receive would be handled as telemetry.
	if _, loops := mqtt.WildcardSegment(topic, mqtt.RejectionTopic(topic, "x")); loops {
		return fmt.Errorf("%w: rejection topic for %q matches the pattern", ErrInvalidTopic, topic)
	}
	return nil
}

func (i *Ingester) context() context.Context {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.ctx
}

// handleMessage saves one batch. The returned error is logged by the MQTT
// client; rejection is also reported back to the device.
func (i *Ingester) handleMessage(topic string, payload []byte) error {
	serial, ok := mqtt.WildcardSegment(i.topic, topic)
	if !ok {
		return fmt.Errorf("ingest: topic %q does not match %q", topic, i.topic)
	}

	cmd, err := decodeReport(serial, payload)
	if err == nil {
		var saved handler.SavedTemperatures
		saved, err = i.save.Handle(i.context(), cmd)
		if err == nil {
			i.logger.Debug("telemetry saved", "serial_number", serial, "samples", saved.SampleCount)
			return nil
		}
	}

	i.reject(serial, err)
	return fmt.Errorf("ingesting telemetry for %q: %w", serial, err)
}

func decodeReport(serial string, payload []byte) (device.SaveDeviceTemperature, error) {
	var report schema.TemperatureReport
	if err := schema.DecodeJSON(bytes.NewReader(payload), &report); err != nil {
		return device.SaveDeviceTemperature{}, err
	}
	return report.ToCommand(serial)
}

// reject publishes the error kind on the rejection topic derived from the
// subscription pattern.
func (i *Ingester) reject(serial string, cause error) {
	body, err := json.Marshal(schema.ErrorOut{Error: device.KindOf(cause)})
	if err != nil {
		return
	}
	if err := i.sub.Publish(mqtt.RejectionTopic(i.topic, serial), body, i.qos, false); err != nil {
		i.logger.Warn("publishing telemetry rejection failed",
			"serial_number", serial,
			"error", err,
		)
	}
}
