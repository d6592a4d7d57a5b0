package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mediadesk/coverage-allocator/internal/models"
)

// TopicPrefix is the MQTT namespace the delivery workers subscribe on; the
// recipient's id hex is appended per message.
const TopicPrefix = "coverage/notifications/"

// Publisher is the slice of the MQTT client the sender uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTSender publishes notifications to the internal MQTT bus. Delivery
// channels (email/SMS/push workers) consume from there.
type MQTTSender struct {
	client Publisher
}

// NewMQTTSender connects to the broker and returns a sender.
func NewMQTTSender(broker, clientID string) (*MQTTSender, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &MQTTSender{client: client}, nil
}

// NewMQTTSenderWithClient wraps an existing publisher, used in tests.
func NewMQTTSenderWithClient(client Publisher) *MQTTSender {
	return &MQTTSender{client: client}
}

// Send publishes the notification as JSON at QoS 1.
func (s *MQTTSender) Send(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	token := s.client.Publish(TopicPrefix+n.RecipientID.Hex(), 1, false, payload)
	token.Wait()
	return token.Error()
}
