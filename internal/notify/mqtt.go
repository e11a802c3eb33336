package notify

import (
	"encoding/json"

	"github.com/nerrad567/gray-logic-hub/internal/device"
	"github.com/nerrad567/gray-logic-hub/internal/hub"
	"github.com/nerrad567/gray-logic-hub/internal/infrastructure/mqtt"
)

// Publisher sends MQTT messages. *mqtt.Client satisfies it.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	QoS() byte
}

// MQTTPublisher publishes access events and device status on MQTT.
type MQTTPublisher struct {
	pub    Publisher
	logger Logger
	topics mqtt.Topics
}

// NewMQTTPublisher creates an MQTTPublisher.
func NewMQTTPublisher(pub Publisher, logger Logger) *MQTTPublisher {
	return &MQTTPublisher{pub: pub, logger: orNoop(logger)}
}

// DeviceAccessed publishes ev as JSON on the device's access topic.
func (p *MQTTPublisher) DeviceAccessed(ev device.AccessEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("encoding access event", "device_id", ev.DeviceID, "error", err)
		return
	}

	topic := p.topics.DeviceAccess(ev.DeviceID)
	if err := p.pub.Publish(topic, payload, p.pub.QoS(), false); err != nil {
		p.logger.Warn("publishing access event failed", "topic", topic, "error", err)
	}
}

// PublishStatus publishes each entry's status, retained, on its device's
// status topic. It returns the number of messages the broker accepted.
func (p *MQTTPublisher) PublishStatus(entries []hub.StatusEntry) int {
	published := 0
	for _, e := range entries {
		topic := p.topics.DeviceStatus(e.DeviceID)
		if err := p.pub.Publish(topic, []byte(e.Status), p.pub.QoS(), true); err != nil {
			p.logger.Warn("publishing device status failed", "topic", topic, "error", err)
			continue
		}
		published++
	}
	return published
}
