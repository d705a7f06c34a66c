package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/metrics"
)

// DecisionRecorder persists decision records and publishes their events.
// Neither step can fail a pipeline run; failures are logged.
type DecisionRecorder struct {
	repo      port.DecisionRepository
	publisher port.EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewDecisionRecorder creates a DecisionRecorder.
func NewDecisionRecorder(repo port.DecisionRepository, publisher port.EventPublisher, logger *slog.Logger, m *metrics.Metrics) *DecisionRecorder {
	return &DecisionRecorder{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
	}
}

// Record saves the record and publishes its events. It returns the record ID
// when the record was stored, nil otherwise.
func (r *DecisionRecorder) Record(ctx context.Context, record *model.DecisionRecord) *uuid.UUID {
	r.metrics.IncrementDecision(string(record.Kind()), record.Tier())

	var stored *uuid.UUID
	if err := r.repo.Save(ctx, record); err != nil {
		r.logger.ErrorContext(ctx, "failed to save decision",
			"decision_id", record.ID(),
			"kind", record.Kind(),
			"error", err,
		)
	} else {
		id := record.ID()
		stored = &id
	}

	if evts := record.DomainEvents(); len(evts) > 0 {
		if err := r.publisher.Publish(ctx, evts...); err != nil {
			r.logger.ErrorContext(ctx, "failed to publish decision events",
				"decision_id", record.ID(),
				"events", len(evts),
				"error", err,
			)
		} else {
			record.ClearDomainEvents()
		}
	}

	return stored
}
