package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamkasse/internal/events"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := events.NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()
	defer bus.Unsubscribe(a)
	defer bus.Unsubscribe(b)

	bus.Publish(events.TopicProducts)

	for _, sub := range []*events.Subscriber{a, b} {
		select {
		case ev := <-sub.C:
			assert.Equal(t, events.TopicProducts, ev.Topic)
			assert.NotZero(t, ev.TS)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := events.NewBus()
	s := bus.Subscribe()
	bus.Unsubscribe(s)

	_, open := <-s.C
	require.False(t, open)

	// double unsubscribe must not panic
	bus.Unsubscribe(s)
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := events.NewBus()
	s := bus.Subscribe()
	defer bus.Unsubscribe(s)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(events.TopicPurchases)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
