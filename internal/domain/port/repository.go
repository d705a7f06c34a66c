package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
)

// DecisionRepository defines the persistence port for decision records.
type DecisionRepository interface {
	// Save persists a new decision record.
	Save(ctx context.Context, record *model.DecisionRecord) error

	// FindByID retrieves a record by its identifier, or apperrors.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*model.DecisionRecord, error)

	// ListByPhone returns the most recent records for a phone number, newest first.
	ListByPhone(ctx context.Context, phoneNumber string, limit int) ([]*model.DecisionRecord, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
