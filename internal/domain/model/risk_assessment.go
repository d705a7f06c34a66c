package model

import "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"

// RiskAssessment is the onboarding policy's verdict on a SIM swap signal.
type RiskAssessment struct {
	Tier    valueobject.OnboardingTier `json:"tier"`
	Reasons []string                   `json:"reasons"`
	Actions []valueobject.Action       `json:"actions"`
	Score   int                        `json:"score"`
}

// TransactionRisk is the transaction policy's verdict on a set of signals.
type TransactionRisk struct {
	Level   valueobject.RiskLevel `json:"risk_level"`
	Action  string                `json:"action"`
	Factors []string              `json:"factors"`
	Score   int                   `json:"risk_score"`
}

// Approved reports whether the transaction may proceed.
func (r TransactionRisk) Approved() bool { return r.Level.Approves() }

// RequiresUserConfirmation reports whether the user must confirm the transaction.
func (r TransactionRisk) RequiresUserConfirmation() bool { return r.Level.RequiresUserConfirmation() }

// Blocked reports whether the transaction is stopped outright.
func (r TransactionRisk) Blocked() bool { return r.Level.Blocks() }
