// Package memory holds in-process adapters used when no external store is
// configured. State lives only as long as the process.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface check.
var _ port.DecisionRepository = (*DecisionRepository)(nil)

// DecisionRepository keeps decision records in a map.
type DecisionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*model.DecisionRecord
}

// NewDecisionRepository creates an empty in-memory repository.
func NewDecisionRepository() *DecisionRepository {
	return &DecisionRepository{records: make(map[uuid.UUID]*model.DecisionRecord)}
}

// Save stores a record. Saving the same id twice is an error.
func (r *DecisionRepository) Save(_ context.Context, record *model.DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID()]; exists {
		return fmt.Errorf("decision %s already exists", record.ID())
	}
	r.records[record.ID()] = record
	return nil
}

// FindByID returns the record or apperrors.ErrNotFound.
func (r *DecisionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.DecisionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return record, nil
}

// ListByPhone returns up to limit records for the number, newest first.
func (r *DecisionRepository) ListByPhone(_ context.Context, phoneNumber string, limit int) ([]*model.DecisionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.DecisionRecord, 0)
	for _, record := range r.records {
		if record.PhoneNumber() == phoneNumber {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
