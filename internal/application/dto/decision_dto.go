package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
)

// DecisionResponse is the output DTO for a stored decision record.
type DecisionResponse struct {
	CreatedAt   time.Time `json:"created_at"`
	Kind        string    `json:"kind"`
	SubjectID   string    `json:"subject_id"`
	PhoneNumber string    `json:"phone_number"`
	Tier        string    `json:"tier"`
	Outcome     string    `json:"outcome"`
	Factors     []string  `json:"factors"`
	Actions     []string  `json:"actions"`
	Score       int       `json:"score"`
	ID          uuid.UUID `json:"id"`
}

// ListDecisionsRequest selects recent decisions for one phone number.
type ListDecisionsRequest struct {
	PhoneNumber string `json:"phone_number"`
	Limit       int    `json:"limit,omitempty"`
}

// FromDecision maps a domain record to the response DTO.
func FromDecision(r *model.DecisionRecord) DecisionResponse {
	return DecisionResponse{
		ID:          r.ID(),
		Kind:        string(r.Kind()),
		SubjectID:   r.SubjectID(),
		PhoneNumber: r.PhoneNumber(),
		Score:       r.Score(),
		Tier:        r.Tier(),
		Outcome:     r.Outcome(),
		Factors:     r.Factors(),
		Actions:     r.Actions(),
		CreatedAt:   r.CreatedAt(),
	}
}
