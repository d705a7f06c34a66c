package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

func TestOnboardingTierFromScore(t *testing.T) {
	tests := []struct {
		score    int
		expected valueobject.OnboardingTier
	}{
		{0, valueobject.TierLowRisk},
		{15, valueobject.TierLowRisk},
		{59, valueobject.TierLowRisk},
		{60, valueobject.TierManualReview},
		{65, valueobject.TierManualReview},
		{79, valueobject.TierManualReview},
		{80, valueobject.TierHighRisk},
		{100, valueobject.TierHighRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, valueobject.OnboardingTierFromScore(tt.score), "score %d", tt.score)
	}
}

func TestOnboardingTier_Actions(t *testing.T) {
	assert.Equal(t, []valueobject.Action{
		valueobject.ActionPauseOnboarding,
		valueobject.ActionHoldOTP,
		valueobject.ActionEnqueueManualReview,
		valueobject.ActionNotifyUser,
	}, valueobject.TierHighRisk.Actions())
	assert.Equal(t, []valueobject.Action{
		valueobject.ActionEnqueueManualReview,
		valueobject.ActionNotifyAgent,
	}, valueobject.TierManualReview.Actions())
	assert.Equal(t, []valueobject.Action{valueobject.ActionProceedToKYC}, valueobject.TierLowRisk.Actions())
	assert.Nil(t, valueobject.OnboardingTier{}.Actions())
}

func TestOnboardingTier_ActionsReturnsFreshSlice(t *testing.T) {
	first := valueobject.TierHighRisk.Actions()
	first[0] = valueobject.ActionProceedToKYC

	assert.Equal(t, valueobject.ActionPauseOnboarding, valueobject.TierHighRisk.Actions()[0])
}

func TestOnboardingTierFromString(t *testing.T) {
	tier, err := valueobject.OnboardingTierFromString("MANUAL_REVIEW")
	require.NoError(t, err)
	assert.True(t, tier.Equal(valueobject.TierManualReview))

	_, err = valueobject.OnboardingTierFromString("MEDIUM")
	assert.Error(t, err)
}

func TestDedupeActions(t *testing.T) {
	in := []valueobject.Action{
		valueobject.ActionNotifyUser,
		valueobject.ActionHoldOTP,
		valueobject.ActionNotifyUser,
		valueobject.ActionHoldOTP,
		valueobject.ActionProceedToKYC,
	}

	assert.Equal(t, []valueobject.Action{
		valueobject.ActionNotifyUser,
		valueobject.ActionHoldOTP,
		valueobject.ActionProceedToKYC,
	}, valueobject.DedupeActions(in))
	assert.Nil(t, valueobject.DedupeActions(nil))
}

func TestParseAction(t *testing.T) {
	a, err := valueobject.ParseAction("hold_otp")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ActionHoldOTP, a)

	_, err = valueobject.ParseAction("wire_money")
	assert.Error(t, err)
}

func TestOnboardingTier_TextRoundTrip(t *testing.T) {
	b, err := valueobject.TierManualReview.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "MANUAL_REVIEW", string(b))

	var tier valueobject.OnboardingTier
	require.NoError(t, tier.UnmarshalText(b))
	assert.True(t, tier.Equal(valueobject.TierManualReview))
	assert.Error(t, tier.UnmarshalText([]byte("nope")))
}
