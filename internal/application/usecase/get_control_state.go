package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// GetControlState reads the onboarding gate the dispatcher left for a subject.
type GetControlState struct {
	control port.OnboardingControl
}

// NewGetControlState creates a new GetControlState use case.
func NewGetControlState(control port.OnboardingControl) *GetControlState {
	return &GetControlState{control: control}
}

// Execute returns the gate state for subjectID.
func (uc *GetControlState) Execute(ctx context.Context, subjectID string) (dto.ControlStateResponse, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return dto.ControlStateResponse{}, apperrors.NewValidationError("subject_id", "is required")
	}

	state, err := uc.control.State(ctx, subjectID)
	if err != nil {
		return dto.ControlStateResponse{}, fmt.Errorf("get control state %s: %w", subjectID, err)
	}
	return dto.FromControlState(state), nil
}
