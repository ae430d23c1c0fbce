// Package mqttbus implements the message bus port over an MQTT broker using
// the Eclipse Paho client. It is the distributed counterpart of inprocbus:
// the topic and wildcard semantics are the broker's own, so the two adapters
// are interchangeable behind ports.MessageBus.
package mqttbus

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"warehouse/internal/core/ports"
)

const (
	// QoS 0 for fire-and-forget telemetry, QoS 1 for dispatches whose loss
	// would strand an assignment.
	qosFireAndForget = 0
	qosAtLeastOnce   = 1

	connectTimeout = 10 * time.Second
)

// Config holds the broker connection settings.
type Config struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string
}

// Bus is an MQTT-backed message bus.
type Bus struct {
	client mqtt.Client
}

// Connect creates a bus and connects it to the broker. The client
// auto-reconnects and replays subscriptions after a connection loss.
func Connect(cfg Config) (*Bus, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetCleanSession(false).
		SetOrderMatters(true)

	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timeout", cfg.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.BrokerURL, err)
	}

	return &Bus{client: client}, nil
}

// Publish sends payload at QoS 0 without waiting for completion.
func (b *Bus) Publish(_ context.Context, topic string, payload []byte) error {
	token := b.client.Publish(topic, qosFireAndForget, false, payload)
	return token.Error()
}

// PublishAcked sends payload at QoS 1 and waits for the broker's
// acknowledgement, bounded by the context deadline.
func (b *Bus) PublishAcked(ctx context.Context, topic string, payload []byte) error {
	token := b.client.Publish(topic, qosAtLeastOnce, false, payload)
	return waitToken(ctx, token)
}

// Subscribe registers handler for every topic matching filter at QoS 1.
func (b *Bus) Subscribe(ctx context.Context, filter string, handler ports.MessageHandler) error {
	token := b.client.Subscribe(filter, qosAtLeastOnce, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	return waitToken(ctx, token)
}

// Close disconnects from the broker, allowing in-flight work a short grace
// period.
func (b *Bus) Close() error {
	b.client.Disconnect(250)
	return nil
}

func waitToken(ctx context.Context, token mqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
