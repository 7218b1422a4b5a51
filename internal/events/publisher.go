// Package events bridges device lifecycle events onto the MQTT bus.
package events

import (
	"encoding/json"

	"github.com/zerolugithub/gns3-server/internal/infrastructure/mqtt"
	"github.com/zerolugithub/gns3-server/internal/vpcs"
)

// Logger is the interface for logging within the events package.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// publishClient is the slice of the MQTT client the publisher needs.
type publishClient interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Publisher forwards lifecycle events to per-device MQTT topics. It
// implements vpcs.Emitter. Publish failures are logged and swallowed so
// a flaky broker never fails a device operation.
type Publisher struct {
	client publishClient
	qos    byte
	topics mqtt.Topics
	logger Logger
}

// NewPublisher creates a publisher on top of a connected MQTT client.
func NewPublisher(client *mqtt.Client, qos byte) *Publisher {
	return &Publisher{
		client: client,
		qos:    qos,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the publisher.
func (p *Publisher) SetLogger(logger Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Emit publishes the event as JSON on the device's event topic.
func (p *Publisher) Emit(ev vpcs.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("could not encode lifecycle event", "device", ev.Device, "error", err)
		return
	}

	topic := p.topics.DeviceEvent(ev.Device)
	if err := p.client.Publish(topic, payload, p.qos, false); err != nil {
		p.logger.Warn("could not publish lifecycle event",
			"device", ev.Device,
			"topic", topic,
			"error", err,
		)
		return
	}
	p.logger.Debug("lifecycle event published", "device", ev.Device, "type", string(ev.Type))
}
