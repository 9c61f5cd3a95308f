package eventx

import (
	"encoding/json"
	"time"
)

// Envelope is the wire format of an event
type Envelope struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Source    string            `json:"source"`
	Version   string            `json:"version"`
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func serializationError(cause error, id, eventType string) error {
	return ErrorRegistry.NewWithCause(ErrSerializationFailed, cause).
		WithDetail("event_id", id).
		WithDetail("event_type", eventType)
}

// ToJSON serializes an event to its envelope
func ToJSON(event Event) ([]byte, error) {
	if err := validate(event); err != nil {
		return nil, err
	}

	data, err := json.Marshal(event.Payload())
	if err != nil {
		return nil, serializationError(err, event.ID(), event.Type())
	}

	out, err := json.Marshal(Envelope{
		ID:        event.ID(),
		Type:      event.Type(),
		Timestamp: event.Timestamp(),
		Source:    event.Source(),
		Version:   event.Version(),
		Data:      data,
		Metadata:  event.Metadata(),
	})
	if err != nil {
		return nil, serializationError(err, event.ID(), event.Type())
	}
	return out, nil
}

// FromJSON decodes an envelope into a typed event
func FromJSON[T any](raw []byte) (TypedEvent[T], error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, serializationError(err, "", "")
	}

	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, serializationError(err, env.ID, env.Type)
	}

	opts := []EventOption{
		withIdentity(env.ID, env.Timestamp),
		WithSource(env.Source),
		WithVersion(env.Version),
	}
	for k, v := range env.Metadata {
		opts = append(opts, WithMetadata(k, v))
	}
	return NewEvent(env.Type, data, opts...), nil
}
