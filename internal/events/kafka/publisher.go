// Package kafka publishes shop events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/kisankhidmat/khidmat/internal/models"
)

// DefaultTopic receives one event per logged message.
const DefaultTopic = "khidmat.messages.logged"

// Events are written synchronously inside an RPC; batches must flush promptly.
const (
	batchTimeout = 10 * time.Millisecond
	writeTimeout = 5 * time.Second
)

// MessageLoggedEvent is the JSON payload written for each logged message.
type MessageLoggedEvent struct {
	ID       string    `json:"id"`
	Phone    string    `json:"phone"`
	Message  string    `json:"message"`
	LoggedAt time.Time `json:"logged_at"`
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher writing to topic on the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           batchTimeout,
			WriteTimeout:           writeTimeout,
		},
	}
}

// PublishMessageLogged writes entry as a MessageLoggedEvent keyed by phone, so
// events for one customer stay ordered within a partition.
func (p *Publisher) PublishMessageLogged(ctx context.Context, entry models.MessageEntry) error {
	data, err := json.Marshal(NewMessageLoggedEvent(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(entry.Phone), Value: data}); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NewMessageLoggedEvent builds the event for entry with a fresh ID.
func NewMessageLoggedEvent(entry models.MessageEntry) MessageLoggedEvent {
	return MessageLoggedEvent{
		ID:       uuid.New().String(),
		Phone:    entry.Phone,
		Message:  entry.Message,
		LoggedAt: entry.LoggedAt,
	}
}
