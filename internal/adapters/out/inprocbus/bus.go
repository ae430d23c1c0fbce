// Package inprocbus provides an in-process implementation of the message
// bus port. It keeps the topic semantics of an MQTT broker, including the
// "+" and "#" subscription wildcards, without requiring one: publishes are
// fanned out to matching subscriptions in-memory, each subscription
// consuming sequentially in publish order.
//
// The simulation runs fully hermetic on this bus; the mqttbus package
// provides the broker-backed drop-in for distributed deployments.
package inprocbus

import (
	"context"
	"errors"
	"strings"
	"sync"

	"warehouse/internal/core/ports"
)

// ErrBusClosed is returned by operations on a closed bus.
var ErrBusClosed = errors.New("message bus is closed")

const subscriptionBuffer = 256

type delivery struct {
	topic   string
	payload []byte
}

type subscription struct {
	filter  string
	handler ports.MessageHandler
	inbox   chan delivery
}

// Bus is an in-process message bus. The zero value is not usable; create
// one with NewBus.
type Bus struct {
	mu            sync.RWMutex
	subscriptions []*subscription
	closed        bool
	wg            sync.WaitGroup
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Publish delivers payload to every subscription whose filter matches topic.
// Delivery is asynchronous: each subscription consumes from its own queue,
// preserving publish order per subscription.
func (b *Bus) Publish(_ context.Context, topic string, payload []byte) error {
	// Read lock only: concurrent publishes proceed in parallel, and inboxes
	// stay open for the duration of the sends because Close takes the write
	// lock.
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	for _, sub := range b.subscriptions {
		if MatchTopic(sub.filter, topic) {
			sub.inbox <- delivery{topic: topic, payload: payload}
		}
	}
	return nil
}

// PublishAcked is identical to Publish for the in-process bus: enqueueing is
// acceptance.
func (b *Bus) PublishAcked(ctx context.Context, topic string, payload []byte) error {
	return b.Publish(ctx, topic, payload)
}

// Subscribe registers handler for every topic matching filter. The handler
// runs on a dedicated goroutine, one message at a time.
func (b *Bus) Subscribe(_ context.Context, filter string, handler ports.MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}

	sub := &subscription{
		filter:  filter,
		handler: handler,
		inbox:   make(chan delivery, subscriptionBuffer),
	}
	b.subscriptions = append(b.subscriptions, sub)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for d := range sub.inbox {
			sub.handler(d.topic, d.payload)
		}
	}()

	return nil
}

// Close stops delivery and waits for in-flight handlers to finish.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for _, sub := range b.subscriptions {
		close(sub.inbox)
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}

// MatchTopic reports whether an MQTT-style filter matches a concrete topic.
// "+" matches exactly one level, "#" matches any number of trailing levels
// and is only valid as the last level of the filter.
func MatchTopic(filter, topic string) bool {
	filterLevels := strings.Split(filter, "/")
	topicLevels := strings.Split(topic, "/")

	for i, level := range filterLevels {
		if level == "#" {
			return i == len(filterLevels)-1
		}
		if i >= len(topicLevels) {
			return false
		}
		if level != "+" && level != topicLevels[i] {
			return false
		}
	}

	return len(filterLevels) == len(topicLevels)
}
