package service

import "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"

// OnboardingScorer evaluates a SIM swap signal for an onboarding decision.
type OnboardingScorer interface {
	Evaluate(signal model.SimSwapSignal) model.RiskAssessment
}

// TransactionScorer evaluates the signals gathered for a transaction.
type TransactionScorer interface {
	Evaluate(input TransactionInput) model.TransactionRisk
}

var (
	_ OnboardingScorer  = (*OnboardingPolicy)(nil)
	_ TransactionScorer = (*TransactionPolicy)(nil)
)

func clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
