package calq

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// EventType classifies engine events.
type EventType string

const (
	EventConversion EventType = "conversion"
	EventBatch      EventType = "batch"
	EventPreload    EventType = "preload"
)

// Event is a notification published by the engine after an operation
// completes. Consumers (the playground dashboard, analytics glue) subscribe
// through the registry; the engine never depends on them.
type Event struct {
	Type       EventType
	CategoryID catalog.CategoryID
	Message    string
	Timestamp  time.Time
}

// EventListener receives published events. Handlers must not block.
type EventListener interface {
	Handle(Event)
}

// EventListenerFunc adapts a function to the EventListener interface.
type EventListenerFunc func(Event)

func (f EventListenerFunc) Handle(evt Event) { f(evt) }

// EventRegistry fans events out to subscribed listeners per event type.
type EventRegistry struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventListener
}

func NewEventRegistry() *EventRegistry {
	return &EventRegistry{listeners: make(map[EventType][]EventListener)}
}

// Subscribe registers a listener for one event type.
func (r *EventRegistry) Subscribe(t EventType, l EventListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[t] = append(r.listeners[t], l)
}

// Publish delivers an event to all listeners registered for its type.
func (r *EventRegistry) Publish(evt Event) {
	r.mu.RLock()
	listeners, ok := r.listeners[evt.Type]
	if !ok {
		r.mu.RUnlock()
		return
	}
	// Copy to release the lock before handler calls.
	snapshot := make([]EventListener, len(listeners))
	copy(snapshot, listeners)
	r.mu.RUnlock()

	for _, l := range snapshot {
		l.Handle(evt)
	}
}

// LogListener writes events to a zap logger at debug level.
type LogListener struct {
	Log *zap.Logger
}

func (l *LogListener) Handle(evt Event) {
	l.Log.Debug("engine event",
		zap.String("type", string(evt.Type)),
		zap.String("category", string(evt.CategoryID)),
		zap.String("message", evt.Message))
}
