package dto

import (
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dispatch"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
)

// SimSwapSignalResponse describes a SIM swap signal.
type SimSwapSignalResponse struct {
	SwapDate         *time.Time `json:"swap_date,omitempty"`
	HoursSinceChange *float64   `json:"hours_since_change,omitempty"`
	Status           string     `json:"status"`
	Message          string     `json:"message"`
	Recommendation   string     `json:"recommendation"`
	MaxAgeHours      int        `json:"max_age_hours"`
	Swapped          bool       `json:"swapped"`
}

// OwnershipSignalResponse describes a number verification signal.
type OwnershipSignalResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
	Verified       bool   `json:"verified"`
}

// AssessmentResponse describes an onboarding risk assessment.
type AssessmentResponse struct {
	Tier    string   `json:"tier"`
	Reasons []string `json:"reasons"`
	Actions []string `json:"actions"`
	Score   int      `json:"score"`
}

// ActionOutcomeResponse describes one dispatched action.
type ActionOutcomeResponse struct {
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
	OK     bool   `json:"ok"`
}

// FromSimSwapSignal maps a signal to its response DTO.
func FromSimSwapSignal(s model.SimSwapSignal) SimSwapSignalResponse {
	resp := SimSwapSignalResponse{
		Status:         string(s.Status()),
		Message:        s.Message(),
		Recommendation: s.Recommendation(),
		MaxAgeHours:    s.MaxAgeHours(),
		Swapped:        s.Swapped(),
	}
	if d, ok := s.SwapDate(); ok {
		resp.SwapDate = &d
	}
	if h, ok := s.HoursSinceChange(); ok {
		resp.HoursSinceChange = &h
	}
	return resp
}

// FromOwnershipSignal maps a signal to its response DTO.
func FromOwnershipSignal(s model.OwnershipSignal) OwnershipSignalResponse {
	return OwnershipSignalResponse{
		Status:         string(s.Status()),
		Message:        s.Message(),
		Recommendation: s.Recommendation(),
		Verified:       s.Verified(),
	}
}

// FromAssessment maps an assessment to its response DTO.
func FromAssessment(a model.RiskAssessment) *AssessmentResponse {
	actions := make([]string, len(a.Actions))
	for i, action := range a.Actions {
		actions[i] = string(action)
	}
	return &AssessmentResponse{
		Score:   a.Score,
		Tier:    a.Tier.String(),
		Reasons: append([]string{}, a.Reasons...),
		Actions: actions,
	}
}

// FromReport maps dispatch outcomes to response DTOs.
func FromReport(r dispatch.Report) []ActionOutcomeResponse {
	out := make([]ActionOutcomeResponse, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = ActionOutcomeResponse{Action: string(o.Action), OK: o.OK()}
		if o.Err != nil {
			out[i].Error = o.Err.Error()
		}
	}
	return out
}
