package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// GetDecision is the use case for reading stored decision records.
type GetDecision struct {
	repo port.DecisionRepository
}

// NewGetDecision creates a new GetDecision use case.
func NewGetDecision(repo port.DecisionRepository) *GetDecision {
	return &GetDecision{repo: repo}
}

// Execute returns the decision with the given id.
func (uc *GetDecision) Execute(ctx context.Context, id string) (dto.DecisionResponse, error) {
	decisionID, err := uuid.Parse(id)
	if err != nil {
		return dto.DecisionResponse{}, apperrors.NewValidationError("decision_id", "must be a UUID")
	}

	record, err := uc.repo.FindByID(ctx, decisionID)
	if err != nil {
		return dto.DecisionResponse{}, fmt.Errorf("get decision %s: %w", decisionID, err)
	}
	return dto.FromDecision(record), nil
}

// List returns the most recent decisions for a phone number, newest first.
func (uc *GetDecision) List(ctx context.Context, req dto.ListDecisionsRequest) ([]dto.DecisionResponse, error) {
	phone, err := valueobject.NewPhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, apperrors.NewValidationError("phone_number", err.Error())
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	records, err := uc.repo.ListByPhone(ctx, phone.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}

	out := make([]dto.DecisionResponse, len(records))
	for i, r := range records {
		out[i] = dto.FromDecision(r)
	}
	return out, nil
}
