package dto

import "github.com/google/uuid"

// OnboardingRequest is the input DTO for the RunOnboarding use case.
type OnboardingRequest struct {
	PhoneNumber string `json:"phone_number"`
	UserName    string `json:"user_name,omitempty"`
	Language    string `json:"language,omitempty"`
}

// OnboardingResponse is the output DTO of an onboarding run.
type OnboardingResponse struct {
	Assessment     *AssessmentResponse      `json:"assessment,omitempty"`
	DecisionID     *uuid.UUID               `json:"decision_id,omitempty"`
	SimSwap        *SimSwapSignalResponse   `json:"sim_swap,omitempty"`
	Ownership      *OwnershipSignalResponse `json:"ownership,omitempty"`
	Status         string                   `json:"status"`
	NextStep       string                   `json:"next_step"`
	Messages       []string                 `json:"messages"`
	Actions        []ActionOutcomeResponse  `json:"actions,omitempty"`
	RiskScore      int                      `json:"risk_score"`
	SessionID      uuid.UUID                `json:"session_id"`
	SimSwapChecked bool                     `json:"sim_swap_checked"`
	NumberVerified bool                     `json:"number_verified"`
}
