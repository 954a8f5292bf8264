package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"shipments/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

const handlerTimeout = 10 * time.Second

// ChangeStream consumes change events from the change topic. The consumer
// group splits partitions across running instances; an event whose handler
// fails is not committed and will be redelivered.
type ChangeStream struct {
	reader *skafka.Reader
	logger *slog.Logger
}

// NewChangeStream creates a consumer for the change topic. groupID spreads
// partitions across instances of the same service.
func NewChangeStream(brokers []string, topic, groupID string, logger *slog.Logger) *ChangeStream {
	return &ChangeStream{
		reader: skafka.NewReader(skafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		logger: logger.With("component", "kafka_change_stream"),
	}
}

// Subscribe blocks fetching events until the context is cancelled. Events of
// other entity types are committed without invoking the handler. A handler
// failure leaves the offset uncommitted so the transport redelivers.
func (s *ChangeStream) Subscribe(ctx context.Context, entityType string, handler ports.ChangeHandler) error {
	s.logger.InfoContext(ctx, "Change stream subscribed",
		"topic", s.reader.Config().Topic, "group", s.reader.Config().GroupID, "entity_type", entityType)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		m, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.ErrorContext(ctx, "Fetch failed, backing off", "error", err)
			time.Sleep(time.Second)
			continue
		}

		var event ports.ChangeEvent
		if err = json.Unmarshal(m.Value, &event); err != nil {
			// A malformed message will never parse; skip it.
			s.logger.WarnContext(ctx, "Malformed change event skipped", "offset", m.Offset, "error", err)
			if err = s.reader.CommitMessages(ctx, m); err != nil {
				s.logger.ErrorContext(ctx, "Failed to commit offset", "error", err)
			}
			continue
		}

		if event.EntityType == entityType {
			processCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
			err = handler(processCtx, event)
			cancel()

			if err != nil {
				s.logger.ErrorContext(ctx, "Change event handling failed, will redeliver",
					"offset", m.Offset, "entity_id", event.EntityID, "error", err)
				continue
			}
		}

		if err = s.reader.CommitMessages(ctx, m); err != nil {
			s.logger.ErrorContext(ctx, "Failed to commit offset", "error", err)
		}
	}
}

// Close disconnects from the broker.
func (s *ChangeStream) Close() error {
	return s.reader.Close()
}
