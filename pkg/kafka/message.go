package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is a notification payload with routing key and metadata headers.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

const (
	HeaderMessageID     = "message-id"
	HeaderEventType     = "event-type"
	HeaderSource        = "source"
	HeaderSchemaVersion = "schema-version"
	HeaderTimestamp     = "timestamp"
)

// NewMessage builds a notification message. The payload is JSON-encoded;
// a marshal failure leaves Value nil, which Publish rejects.
func NewMessage(key, eventType, source string, payload any) Message {
	value, err := json.Marshal(payload)
	if err != nil {
		value = nil
	}

	now := time.Now()
	return Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderMessageID:     uuid.NewString(),
			HeaderEventType:     eventType,
			HeaderSource:        source,
			HeaderSchemaVersion: "1",
			HeaderTimestamp:     now.Format(time.RFC3339),
		},
	}
}

func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) MessageID() string {
	return m.Headers[HeaderMessageID]
}

func (m *Message) EventType() string {
	return m.Headers[HeaderEventType]
}
