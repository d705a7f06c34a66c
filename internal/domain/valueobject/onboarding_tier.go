package valueobject

import "fmt"

// OnboardingTier classifies an onboarding risk assessment.
type OnboardingTier struct {
	value string
}

var (
	TierLowRisk      = OnboardingTier{value: "LOW_RISK"}
	TierManualReview = OnboardingTier{value: "MANUAL_REVIEW"}
	TierHighRisk     = OnboardingTier{value: "HIGH_RISK"}
)

// Onboarding tier thresholds. Boundaries are inclusive.
const (
	HighRiskThreshold     = 80
	ManualReviewThreshold = 60
)

// OnboardingTierFromScore derives the tier from a score in [0, 100].
func OnboardingTierFromScore(score int) OnboardingTier {
	switch {
	case score >= HighRiskThreshold:
		return TierHighRisk
	case score >= ManualReviewThreshold:
		return TierManualReview
	default:
		return TierLowRisk
	}
}

// OnboardingTierFromString reconstructs a tier from its string form.
func OnboardingTierFromString(s string) (OnboardingTier, error) {
	switch s {
	case "LOW_RISK":
		return TierLowRisk, nil
	case "MANUAL_REVIEW":
		return TierManualReview, nil
	case "HIGH_RISK":
		return TierHighRisk, nil
	default:
		return OnboardingTier{}, fmt.Errorf("invalid onboarding tier: %s", s)
	}
}

// Actions returns the ordered actions prescribed for this tier.
// A fresh slice is returned on every call.
func (t OnboardingTier) Actions() []Action {
	switch t.value {
	case "HIGH_RISK":
		return []Action{ActionPauseOnboarding, ActionHoldOTP, ActionEnqueueManualReview, ActionNotifyUser}
	case "MANUAL_REVIEW":
		return []Action{ActionEnqueueManualReview, ActionNotifyAgent}
	case "LOW_RISK":
		return []Action{ActionProceedToKYC}
	default:
		return nil
	}
}

// String returns the string representation.
func (t OnboardingTier) String() string {
	return t.value
}

// MarshalText implements encoding.TextMarshaler.
func (t OnboardingTier) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *OnboardingTier) UnmarshalText(b []byte) error {
	parsed, err := OnboardingTierFromString(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsZero returns true if the tier has not been set.
func (t OnboardingTier) IsZero() bool {
	return t.value == ""
}

// Equal checks equality with another OnboardingTier.
func (t OnboardingTier) Equal(other OnboardingTier) bool {
	return t.value == other.value
}
