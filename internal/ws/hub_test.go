package ws

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FanOutToAllObservers(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("s1")
	b := hub.Subscribe("s1")
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	hub.Publish(Event{SessionID: "s1", Type: EventSessionStarted})

	for _, sub := range []*Subscriber{a, b} {
		event := <-sub.Events()
		assert.Equal(t, EventSessionStarted, event.Type)
		assert.Equal(t, "s1", event.SessionID)
	}
}

func TestHub_FiltersBySession(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("s1")
	b := hub.Subscribe("s2")
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	hub.Publish(Event{SessionID: "s1", Type: EventPlayerJoined})

	event := <-a.Events()
	assert.Equal(t, EventPlayerJoined, event.Type)

	select {
	case e := <-b.Events():
		t.Fatalf("observer of s2 got event %q", e.Type)
	default:
	}
}

func TestHub_NoReplayForLateObservers(t *testing.T) {
	hub := NewHub()

	hub.Publish(Event{SessionID: "s1", Type: EventSessionCreated})

	late := hub.Subscribe("s1")
	defer hub.Unsubscribe(late)

	select {
	case e := <-late.Events():
		t.Fatalf("late observer got replayed event %q", e.Type)
	default:
	}
}

func TestHub_UnsubscribeStopsDeliveryAndClosesChannel(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("s1")
	b := hub.Subscribe("s1")
	defer hub.Unsubscribe(b)

	hub.Unsubscribe(a)

	_, ok := <-a.Events()
	assert.False(t, ok)

	// Removal of one observer does not affect the other.
	hub.Publish(Event{SessionID: "s1", Type: EventSessionEnded})
	event := <-b.Events()
	assert.Equal(t, EventSessionEnded, event.Type)

	// Unsubscribing twice is safe.
	hub.Unsubscribe(a)
}

func TestHub_SlowObserverDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe("s1")
	fast := hub.Subscribe("s1")
	defer hub.Unsubscribe(slow)
	defer hub.Unsubscribe(fast)

	total := subscriberBuffer + 8
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			hub.Publish(Event{SessionID: "s1", Type: fmt.Sprintf("e%d", i)})
			// Keep the fast observer drained so only slow falls behind.
			<-fast.Events()
		}
	}()

	// Publish must complete even though nobody reads the slow observer.
	<-done

	received := 0
	for {
		select {
		case <-slow.Events():
			received++
			continue
		default:
		}
		break
	}
	require.Equal(t, subscriberBuffer, received)
}

func TestHub_PublishWithoutObservers(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.Publish(Event{SessionID: "nobody", Type: EventScanCompleted})
}
