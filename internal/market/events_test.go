package market

import (
	"testing"
	"time"
)

func TestEventHubPublishSubscribe(t *testing.T) {
	hub := NewEventHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	hub.Publish("task-1", "running")

	select {
	case event := <-ch:
		if event.TaskId != "task-1" || event.Status != "running" {
			t.Errorf("unexpected event: %+v", event)
		}
		if event.Timestamp == "" {
			t.Error("event must carry a timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestEventHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewEventHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	// Overfill the subscriber buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish("task-1", "running")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestEventHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewEventHub()
	ch := hub.Subscribe()
	hub.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel must be closed after unsubscribe")
	}

	// A second unsubscribe for the same channel must be harmless.
	hub.Unsubscribe(ch)
}
