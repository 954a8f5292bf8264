// Package kafka implements the change-event channel on Kafka. Events are
// thin JSON envelopes carrying only the change kind, entity type, and entity
// id; consumers refetch the full state themselves.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"shipments/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// Writer defines the subset of segmentio kafka.Writer the publisher needs.
// This makes the publisher testable.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// ChangePublisher emits change events onto the change topic, keyed by entity
// id so all events for one shipment land on the same partition in order.
type ChangePublisher struct {
	writer Writer
	logger *slog.Logger
}

// NewChangePublisher creates a publisher writing to the provided broker and topic.
func NewChangePublisher(brokerURL, topic string, logger *slog.Logger) *ChangePublisher {
	w := &skafka.Writer{
		Addr:     skafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return newChangePublisher(w, logger)
}

// NewChangePublisherWithWriter allows injecting a test writer.
func NewChangePublisherWithWriter(w Writer, logger *slog.Logger) *ChangePublisher {
	return newChangePublisher(w, logger)
}

func newChangePublisher(w Writer, logger *slog.Logger) *ChangePublisher {
	return &ChangePublisher{
		writer: w,
		logger: logger.With("component", "kafka_change_publisher"),
	}
}

// Publish marshals the event to JSON and writes it keyed by entity id.
func (p *ChangePublisher) Publish(ctx context.Context, event ports.ChangeEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := skafka.Message{Key: []byte(event.EntityID), Value: value}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, "Kafka write failed",
			"kind", string(event.Kind), "entity_id", event.EntityID, "error", err)
		return err
	}
	return nil
}

// Close closes the underlying writer.
func (p *ChangePublisher) Close() error {
	return p.writer.Close()
}
