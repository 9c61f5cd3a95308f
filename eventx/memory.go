package eventx

import (
	"context"
	"sync"
)

// Handler processes a delivered event
type Handler func(ctx context.Context, event Event) error

// MemoryBus delivers events synchronously to in-process handlers and keeps
// a log of everything published.
type MemoryBus struct {
	mu        sync.RWMutex
	handlers  map[string][]Handler
	published []Event
}

// NewMemoryBus creates an empty bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for an event type, "*" receives every event
func (b *MemoryBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish implements Publisher. Handlers run in registration order and the
// first failure is returned.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	if err := validate(event); err != nil {
		return err
	}

	b.mu.Lock()
	b.published = append(b.published, event)
	handlers := append(append([]Handler(nil), b.handlers[event.Type()]...), b.handlers["*"]...)
	b.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			return ErrorRegistry.NewWithCause(ErrHandlerFailed, err).
				WithDetail("event_id", event.ID()).
				WithDetail("event_type", event.Type())
		}
	}
	return nil
}

// Published returns a copy of the events published so far
func (b *MemoryBus) Published() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Event(nil), b.published...)
}
