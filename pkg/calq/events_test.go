package calq

import (
	"context"
	"sync"
	"testing"
)

func TestEventRegistryFanOut(t *testing.T) {
	r := NewEventRegistry()

	var mu sync.Mutex
	var got []Event
	r.Subscribe(EventConversion, EventListenerFunc(func(evt Event) {
		mu.Lock()
		got = append(got, evt)
		mu.Unlock()
	}))

	r.Publish(Event{Type: EventConversion, CategoryID: "length", Message: "one"})
	r.Publish(Event{Type: EventBatch, Message: "ignored"})
	r.Publish(Event{Type: EventConversion, CategoryID: "mass", Message: "two"})

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("listener received %d events, want 2", len(got))
	}
	if got[0].Message != "one" || got[1].Message != "two" {
		t.Errorf("events received out of order: %+v", got)
	}
}

func TestEventRegistryNoListeners(t *testing.T) {
	r := NewEventRegistry()
	// Must be a no-op, not a panic.
	r.Publish(Event{Type: EventPreload})
}

func TestEnginePublishesConversionEvents(t *testing.T) {
	e := newTestEngine(t)

	events := make(chan Event, 8)
	e.Events().Subscribe(EventConversion, EventListenerFunc(func(evt Event) {
		events <- evt
	}))

	if _, err := e.Convert(context.Background(), 1, "length", "meter", "foot", nil); err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-events:
		if evt.CategoryID != "length" {
			t.Errorf("event category = %q, want length", evt.CategoryID)
		}
		if evt.Message == "" {
			t.Error("event carries no message")
		}
	default:
		t.Fatal("no conversion event published")
	}
}

func TestEnginePublishesBatchEvents(t *testing.T) {
	e := newTestEngine(t, WithSyncBatch())

	events := make(chan Event, 8)
	e.Events().Subscribe(EventBatch, EventListenerFunc(func(evt Event) {
		events <- evt
	}))

	_, err := e.ConvertBatch(context.Background(), []BatchItem{
		{Value: 1, CategoryID: "length", FromUnitID: "meter", ToUnitID: "foot"},
	})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case evt := <-events:
		if evt.Type != EventBatch {
			t.Errorf("event type = %q, want %q", evt.Type, EventBatch)
		}
	default:
		t.Fatal("no batch event published")
	}
}
