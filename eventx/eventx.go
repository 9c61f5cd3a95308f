package eventx

import (
	"context"
	"net/http"
	"time"

	"github.com/Abraxas-365/imagetext/errx"
	"github.com/google/uuid"
)

var (
	ErrorRegistry = errx.NewRegistry("EVENT")

	ErrInvalidEventType    = ErrorRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Event type is required")
	ErrSerializationFailed = ErrorRegistry.Register("SERIALIZATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Event serialization failed")
	ErrPublishFailed       = ErrorRegistry.Register("PUBLISH_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Event could not be published")
	ErrHandlerFailed       = ErrorRegistry.Register("HANDLER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Event handler failed")
)

// Event is an immutable domain event
type Event interface {
	ID() string
	Type() string
	Timestamp() time.Time
	Source() string
	Version() string
	Payload() any
	Metadata() map[string]string
}

// TypedEvent provides type-safe access to event data
type TypedEvent[T any] interface {
	Event
	Data() T
}

// Publisher sends events to a backend
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// EventOption configures event creation
type EventOption func(*eventOptions)

type eventOptions struct {
	id        string
	timestamp time.Time
	source    string
	version   string
	metadata  map[string]string
}

// WithSource sets the producer name
func WithSource(source string) EventOption {
	return func(o *eventOptions) { o.source = source }
}

// WithVersion sets the payload schema version
func WithVersion(version string) EventOption {
	return func(o *eventOptions) { o.version = version }
}

// WithMetadata adds a metadata entry
func WithMetadata(key, value string) EventOption {
	return func(o *eventOptions) { o.metadata[key] = value }
}

// withIdentity restores id and timestamp when decoding
func withIdentity(id string, ts time.Time) EventOption {
	return func(o *eventOptions) {
		o.id = id
		o.timestamp = ts
	}
}

type baseEvent[T any] struct {
	id        string
	eventType string
	timestamp time.Time
	source    string
	version   string
	data      T
	metadata  map[string]string
}

// NewEvent creates a typed event with a fresh UUID and the current UTC time
func NewEvent[T any](eventType string, data T, opts ...EventOption) TypedEvent[T] {
	o := eventOptions{
		id:        uuid.NewString(),
		timestamp: time.Now().UTC(),
		source:    "unknown",
		version:   "1.0",
		metadata:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &baseEvent[T]{
		id:        o.id,
		eventType: eventType,
		timestamp: o.timestamp,
		source:    o.source,
		version:   o.version,
		data:      data,
		metadata:  o.metadata,
	}
}

func (e *baseEvent[T]) ID() string                  { return e.id }
func (e *baseEvent[T]) Type() string                { return e.eventType }
func (e *baseEvent[T]) Timestamp() time.Time        { return e.timestamp }
func (e *baseEvent[T]) Source() string              { return e.source }
func (e *baseEvent[T]) Version() string             { return e.version }
func (e *baseEvent[T]) Payload() any                { return e.data }
func (e *baseEvent[T]) Metadata() map[string]string { return e.metadata }
func (e *baseEvent[T]) Data() T                     { return e.data }

func validate(event Event) error {
	if event == nil || event.Type() == "" {
		return ErrorRegistry.New(ErrInvalidEventType)
	}
	return nil
}
