package inprocbus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/adapters/out/inprocbus"
)

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		topic  string
		want   bool
	}{
		{"exact", "a/b/c", "a/b/c", true},
		{"exact_mismatch", "a/b/c", "a/b/d", false},
		{"shorter_topic", "a/b/c", "a/b", false},
		{"longer_topic", "a/b", "a/b/c", false},
		{"plus_one_level", "a/+/c", "a/b/c", true},
		{"plus_wrong_depth", "a/+", "a/b/c", false},
		{"hash_matches_rest", "a/#", "a/b/c/d", true},
		{"hash_matches_sibling_level", "warehouse/site-a/#", "warehouse/site-a/amr/AMR-001/status", true},
		{"hash_not_last_is_invalid", "a/#/c", "a/b/c", false},
		{"robot_status_filter", "site-a/internal/amr/+/status", "site-a/internal/amr/AMR-007/status", true},
		{"robot_status_filter_skips_command", "site-a/internal/amr/+/status", "site-a/internal/amr/AMR-007/command", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, inprocbus.MatchTopic(test.filter, test.topic))
		})
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	t.Run("delivers_to_matching_subscription", func(t *testing.T) {
		bus := inprocbus.NewBus()
		defer bus.Close()

		received := make(chan string, 1)
		err := bus.Subscribe(context.Background(), "a/+/c", func(topic string, payload []byte) {
			received <- topic + ":" + string(payload)
		})
		require.NoError(t, err)

		require.NoError(t, bus.Publish(context.Background(), "a/b/c", []byte("hello")))

		select {
		case got := <-received:
			assert.Equal(t, "a/b/c:hello", got)
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	})

	t.Run("skips_non_matching_subscription", func(t *testing.T) {
		bus := inprocbus.NewBus()
		defer bus.Close()

		received := make(chan struct{}, 1)
		require.NoError(t, bus.Subscribe(context.Background(), "x/#", func(string, []byte) {
			received <- struct{}{}
		}))

		require.NoError(t, bus.Publish(context.Background(), "a/b/c", []byte("hello")))

		select {
		case <-received:
			t.Fatal("unexpected delivery")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("preserves_publish_order_per_subscription", func(t *testing.T) {
		bus := inprocbus.NewBus()

		var mu sync.Mutex
		var got []string
		require.NoError(t, bus.Subscribe(context.Background(), "orders/#", func(_ string, payload []byte) {
			mu.Lock()
			got = append(got, string(payload))
			mu.Unlock()
		}))

		for _, msg := range []string{"1", "2", "3", "4", "5"} {
			require.NoError(t, bus.Publish(context.Background(), "orders/new", []byte(msg)))
		}
		require.NoError(t, bus.Close())

		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, got)
	})

	t.Run("fans_out_to_all_matching_subscriptions", func(t *testing.T) {
		bus := inprocbus.NewBus()

		var count sync.WaitGroup
		count.Add(2)
		handler := func(string, []byte) { count.Done() }
		require.NoError(t, bus.Subscribe(context.Background(), "a/b", handler))
		require.NoError(t, bus.Subscribe(context.Background(), "a/+", handler))

		require.NoError(t, bus.PublishAcked(context.Background(), "a/b", []byte("x")))

		done := make(chan struct{})
		go func() { count.Wait(); close(done) }()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("fan-out incomplete")
		}
		require.NoError(t, bus.Close())
	})

	t.Run("publish_after_close_fails", func(t *testing.T) {
		bus := inprocbus.NewBus()
		require.NoError(t, bus.Close())

		err := bus.Publish(context.Background(), "a/b", []byte("x"))
		assert.ErrorIs(t, err, inprocbus.ErrBusClosed)
	})

	t.Run("close_is_idempotent", func(t *testing.T) {
		bus := inprocbus.NewBus()
		require.NoError(t, bus.Close())
		require.NoError(t, bus.Close())
	})
}
