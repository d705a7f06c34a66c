package service

import (
	"fmt"
	"math"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

const (
	// RecentChangeWindowHours is the look-back within which a SIM change is treated as a swap.
	RecentChangeWindowHours = 240
	// BorderlineWindowHours extends the look-back to two weeks at a lower weight.
	BorderlineWindowHours = 336

	onboardingBaseScore = 50
	recentChangePoints  = 45
	borderlinePoints    = 15
	noChangeCredit      = 35
)

// OnboardingPolicy scores a SIM swap signal for onboarding.
// Pure domain logic - no I/O.
type OnboardingPolicy struct{}

// NewOnboardingPolicy creates a new OnboardingPolicy.
func NewOnboardingPolicy() *OnboardingPolicy {
	return &OnboardingPolicy{}
}

// Evaluate starts from a base of 50 and applies exactly one recency rule.
// A swapped signal without a date counts as a change one hour ago; a clean
// signal without a date counts as no change at all.
//
// Failed signals carry no usable recency data and should not be evaluated.
func (p *OnboardingPolicy) Evaluate(signal model.SimSwapSignal) model.RiskAssessment {
	score := onboardingBaseScore
	reasons := make([]string, 0, 1)

	lastChange, known := signal.HoursSinceChange()
	if !known {
		lastChange = math.Inf(1)
		if signal.Swapped() {
			lastChange = 1
		}
	}

	switch {
	case signal.Swapped() || lastChange <= RecentChangeWindowHours:
		score += recentChangePoints
		reasons = append(reasons, fmt.Sprintf("SIM changed within %d hours", RecentChangeWindowHours))
	case lastChange <= BorderlineWindowHours:
		score += borderlinePoints
		reasons = append(reasons, fmt.Sprintf("SIM change within %d hours (borderline)", BorderlineWindowHours))
	default:
		score -= noChangeCredit
		reasons = append(reasons, "No recent SIM change")
	}

	score = clamp(score)
	tier := valueobject.OnboardingTierFromScore(score)

	return model.RiskAssessment{
		Score:   score,
		Tier:    tier,
		Reasons: reasons,
		Actions: valueobject.DedupeActions(tier.Actions()),
	}
}
