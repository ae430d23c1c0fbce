// Package ports defines the contracts between the core layer and
// infrastructure: the topic message bus and the archival stores.
// These interfaces establish dependency inversion and testability.
package ports

import "context"

// MessageHandler consumes one message delivered to a subscription.
// Handlers for one subscription are invoked sequentially, in publish order.
type MessageHandler func(topic string, payload []byte)

// MessageBus is the topic-based publish/subscribe transport every component
// communicates over. Topics are slash-separated; subscription filters support
// the MQTT wildcards "+" (one level) and "#" (trailing, any levels).
type MessageBus interface {
	// Publish delivers payload to every subscription matching topic.
	// Fire-and-forget delivery.
	Publish(ctx context.Context, topic string, payload []byte) error

	// PublishAcked delivers payload like Publish, but blocks until the
	// transport has accepted the message, for publishes whose loss would
	// strand the system (task dispatches, refunds).
	PublishAcked(ctx context.Context, topic string, payload []byte) error

	// Subscribe registers handler for every topic matching filter.
	Subscribe(ctx context.Context, filter string, handler MessageHandler) error

	// Close releases the transport. Publishing after Close is an error.
	Close() error
}
