package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
)

const (
	// EventTypeOnboardingDecided is emitted when an onboarding run reaches a terminal status.
	EventTypeOnboardingDecided = "sentinel.onboarding.decided"

	// EventTypeTransactionAssessed is emitted for every monitored transaction.
	EventTypeTransactionAssessed = "sentinel.transaction.assessed"

	// EventTypeHighRiskDetected is emitted for HIGH_RISK onboarding or CRITICAL transactions.
	EventTypeHighRiskDetected = "sentinel.high_risk.detected"

	// AggregateTypeDecision is the aggregate type carried by every sentinel event.
	AggregateTypeDecision = "decision"
)

// OnboardingDecided is published when an onboarding session is approved or rejected.
type OnboardingDecided struct {
	events.BaseEvent `json:"-"`
	DecisionID       uuid.UUID `json:"decision_id"`
	SessionID        uuid.UUID `json:"session_id"`
	PhoneNumber      string    `json:"phone_number"`
	Status           string    `json:"status"`
	RiskScore        int       `json:"risk_score"`
	Tier             string    `json:"tier,omitempty"`
	Actions          []string  `json:"actions,omitempty"`
	DecidedAt        time.Time `json:"decided_at"`
}

// NewOnboardingDecided creates an OnboardingDecided event.
func NewOnboardingDecided(decisionID, sessionID uuid.UUID, phone, status string, score int, tier string, actions []string, at time.Time) OnboardingDecided {
	e := OnboardingDecided{
		DecisionID:  decisionID,
		SessionID:   sessionID,
		PhoneNumber: phone,
		Status:      status,
		RiskScore:   score,
		Tier:        tier,
		Actions:     actions,
		DecidedAt:   at,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeOnboardingDecided, decisionID, AggregateTypeDecision, mustMarshal(e))
	return e
}

// TransactionAssessed is published when a transaction has been scored.
type TransactionAssessed struct {
	events.BaseEvent `json:"-"`
	DecisionID       uuid.UUID `json:"decision_id"`
	TransactionID    uuid.UUID `json:"transaction_id"`
	PhoneNumber      string    `json:"phone_number"`
	Amount           string    `json:"amount"`
	RiskScore        int       `json:"risk_score"`
	RiskLevel        string    `json:"risk_level"`
	Approved         bool      `json:"approved"`
	Blocked          bool      `json:"blocked"`
	Factors          []string  `json:"factors"`
	AssessedAt       time.Time `json:"assessed_at"`
}

// NewTransactionAssessed creates a TransactionAssessed event.
func NewTransactionAssessed(decisionID, transactionID uuid.UUID, phone, amount string, score int, level string, approved, blocked bool, factors []string, at time.Time) TransactionAssessed {
	e := TransactionAssessed{
		DecisionID:    decisionID,
		TransactionID: transactionID,
		PhoneNumber:   phone,
		Amount:        amount,
		RiskScore:     score,
		RiskLevel:     level,
		Approved:      approved,
		Blocked:       blocked,
		Factors:       factors,
		AssessedAt:    at,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeTransactionAssessed, decisionID, AggregateTypeDecision, mustMarshal(e))
	return e
}

// HighRiskDetected is published when any decision lands in the top tier,
// so downstream alerting can react without subscribing to every decision.
type HighRiskDetected struct {
	events.BaseEvent `json:"-"`
	DecisionID       uuid.UUID `json:"decision_id"`
	Kind             string    `json:"kind"`
	PhoneNumber      string    `json:"phone_number"`
	RiskScore        int       `json:"risk_score"`
	Tier             string    `json:"tier"`
	Signals          []string  `json:"signals"`
	DetectedAt       time.Time `json:"detected_at"`
}

// NewHighRiskDetected creates a HighRiskDetected event.
func NewHighRiskDetected(decisionID uuid.UUID, kind, phone string, score int, tier string, signals []string, at time.Time) HighRiskDetected {
	e := HighRiskDetected{
		DecisionID:  decisionID,
		Kind:        kind,
		PhoneNumber: phone,
		RiskScore:   score,
		Tier:        tier,
		Signals:     signals,
		DetectedAt:  at,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeHighRiskDetected, decisionID, AggregateTypeDecision, mustMarshal(e))
	return e
}

// mustMarshal encodes event bodies. They only hold strings, numbers, times
// and uuids, so encoding cannot fail.
func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
