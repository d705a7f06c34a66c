package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/kafka"
)

// Compile-time interface check.
var _ port.EventPublisher = (*KafkaPublisher)(nil)

// MessageProducer is the subset of kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaPublisher implements port.EventPublisher using Kafka. Events are keyed
// by aggregate id so every event of one decision lands on one partition.
type KafkaPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer MessageProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka in one batch.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, e := range evts {
		headers := events.Headers(e)
		headers["content_type"] = "application/json"
		messages = append(messages, kafka.Message{
			Key:     []byte(e.AggregateID().String()),
			Value:   e.Payload(),
			Headers: headers,
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish %d events: %w", len(evts), err)
	}

	for _, e := range evts {
		p.logger.DebugContext(ctx, "published event",
			slog.String("event_type", e.EventType()),
			slog.String("event_id", e.EventID().String()),
			slog.String("topic", p.topic),
		)
	}
	return nil
}
