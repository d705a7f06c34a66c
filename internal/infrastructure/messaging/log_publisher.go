package messaging

import (
	"context"
	"log/slog"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
)

// Compile-time interface check.
var _ port.EventPublisher = (*LogPublisher)(nil)

// LogPublisher writes events to the log instead of a broker. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event with its payload.
func (p *LogPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, e := range evts {
		p.logger.InfoContext(ctx, "domain event",
			slog.String("event_type", e.EventType()),
			slog.String("event_id", e.EventID().String()),
			slog.String("aggregate_id", e.AggregateID().String()),
			slog.Int("payload_size", len(e.Payload())),
		)
		p.logger.DebugContext(ctx, "event payload",
			slog.String("event_type", e.EventType()),
			slog.String("payload", string(e.Payload())),
		)
	}
	return nil
}
