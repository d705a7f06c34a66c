package dto

import "github.com/google/uuid"

// SimSwapRequest is the input DTO for the AssessSimSwap use case.
type SimSwapRequest struct {
	PhoneNumber string `json:"phone_number"`
	UserID      string `json:"user_id,omitempty"`
	MaxAgeHours int    `json:"max_age_hours,omitempty"`
}

// SimSwapResponse is the output DTO of a standalone SIM swap assessment.
// Assessment and Actions are absent when the signal could not be fetched.
type SimSwapResponse struct {
	Assessment *AssessmentResponse     `json:"assessment,omitempty"`
	DecisionID *uuid.UUID              `json:"decision_id,omitempty"`
	Signal     SimSwapSignalResponse   `json:"signal"`
	Actions    []ActionOutcomeResponse `json:"actions,omitempty"`
}
