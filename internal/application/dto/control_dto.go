package dto

import (
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// ControlStateResponse is the output DTO for a subject's onboarding gate.
type ControlStateResponse struct {
	UpdatedAt    time.Time `json:"updated_at"`
	SubjectID    string    `json:"subject_id"`
	PhoneNumber  string    `json:"phone_number"`
	Paused       bool      `json:"paused"`
	OTPAllowed   bool      `json:"otp_allowed"`
	ClearedToKYC bool      `json:"cleared_to_kyc"`
}

// FromControlState maps a gate state to the response DTO.
func FromControlState(s port.ControlState) ControlStateResponse {
	return ControlStateResponse{
		UpdatedAt:    s.UpdatedAt,
		SubjectID:    s.SubjectID,
		PhoneNumber:  s.PhoneNumber,
		Paused:       s.Paused,
		OTPAllowed:   s.OTPAllowed,
		ClearedToKYC: s.ClearedToKYC,
	}
}
