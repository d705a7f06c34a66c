package service

import (
	"fmt"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

const (
	approveThreshold = 40
	rejectThreshold  = 70
)

// OnboardingVerdict is the terminal outcome of an onboarding session.
type OnboardingVerdict struct {
	Status  valueobject.OnboardingStatus
	Message string
}

// DecideOnboarding maps the session risk score onto approve, approve with
// monitoring, or reject.
func DecideOnboarding(riskScore int, displayName string) OnboardingVerdict {
	switch {
	case riskScore < approveThreshold:
		return OnboardingVerdict{
			Status:  valueobject.OnboardingApproved,
			Message: fmt.Sprintf("🎉 Onboarding approved! Welcome to FinSentinel, %s!", displayName),
		}
	case riskScore < rejectThreshold:
		return OnboardingVerdict{
			Status:  valueobject.OnboardingApproved,
			Message: "⚠️ Onboarding approved with monitoring. Additional verification may be required for transactions.",
		}
	default:
		return OnboardingVerdict{
			Status:  valueobject.OnboardingRejected,
			Message: fmt.Sprintf("❌ Onboarding rejected. Risk score too high (%d/100). Please contact support for manual verification.", riskScore),
		}
	}
}

// FactorSimSwapUnverified is the reason recorded when the SIM swap check fails.
const FactorSimSwapUnverified = "SIM swap status could not be verified"

// UnverifiedSimSwapAssessment is the assessment used in place of a policy
// evaluation when the SIM swap check itself failed. It routes the session to
// manual review.
func UnverifiedSimSwapAssessment() model.RiskAssessment {
	tier := valueobject.TierManualReview
	return model.RiskAssessment{
		Score:   valueobject.ManualReviewThreshold,
		Tier:    tier,
		Reasons: []string{FactorSimSwapUnverified},
		Actions: tier.Actions(),
	}
}

// EscalateOnboarding stops a session whose SIM swap status is unknown.
func EscalateOnboarding() OnboardingVerdict {
	return OnboardingVerdict{
		Status:  valueobject.OnboardingRejected,
		Message: "⚠️ Onboarding paused. SIM swap status could not be verified; your application has been escalated for manual verification.",
	}
}
