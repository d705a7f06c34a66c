package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/event"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

func highRiskAssessment() model.RiskAssessment {
	return model.RiskAssessment{
		Score:   95,
		Tier:    valueobject.TierHighRisk,
		Reasons: []string{"SIM changed within 240 hours"},
		Actions: valueobject.TierHighRisk.Actions(),
	}
}

func TestNewOnboardingDecision_HighRiskRaisesTwoEvents(t *testing.T) {
	now := time.Now()
	session, err := model.NewOnboardingSession("+99999991000", "", "", now)
	require.NoError(t, err)
	session.Status = valueobject.OnboardingApproved

	a := highRiskAssessment()
	r := model.NewOnboardingDecision(session, &a, now)

	assert.Equal(t, model.DecisionOnboarding, r.Kind())
	assert.Equal(t, session.ID.String(), r.SubjectID())
	assert.Equal(t, "approved", r.Outcome())
	assert.Equal(t, "HIGH_RISK", r.Tier())
	assert.Equal(t, []string{"pause_onboarding", "hold_otp", "enqueue_manual_review", "notify_user"}, r.Actions())

	evts := r.DomainEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, event.EventTypeOnboardingDecided, evts[0].EventType())
	assert.Equal(t, event.EventTypeHighRiskDetected, evts[1].EventType())

	r.ClearDomainEvents()
	assert.Empty(t, r.DomainEvents())
}

func TestNewOnboardingDecision_WithoutAssessment(t *testing.T) {
	session, err := model.NewOnboardingSession("+911234567890", "", "", time.Now())
	require.NoError(t, err)

	r := model.NewOnboardingDecision(session, nil, time.Now())

	assert.Empty(t, r.Tier())
	assert.Empty(t, r.Actions())
	assert.Len(t, r.DomainEvents(), 1)
}

func TestNewTransactionDecision_Outcomes(t *testing.T) {
	txn, err := model.NewTransactionEvent("+99999991000", decimal.NewFromInt(60000), "upi", "", time.Now())
	require.NoError(t, err)

	tests := []struct {
		level   valueobject.RiskLevel
		outcome string
		events  int
	}{
		{valueobject.RiskLevelLow, model.OutcomeApproved, 1},
		{valueobject.RiskLevelMedium, model.OutcomeApproved, 1},
		{valueobject.RiskLevelHigh, model.OutcomeConfirmationRequired, 1},
		{valueobject.RiskLevelCritical, model.OutcomeBlocked, 2},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			r := model.NewTransactionDecision(txn, model.TransactionRisk{Score: 50, Level: tt.level}, time.Now())
			assert.Equal(t, tt.outcome, r.Outcome())
			assert.Equal(t, tt.level.String(), r.Tier())
			assert.Len(t, r.DomainEvents(), tt.events)
		})
	}
}

func TestNewSimSwapDecision(t *testing.T) {
	r := model.NewSimSwapDecision("user-42", "+99999991000", highRiskAssessment(), time.Now())

	assert.Equal(t, model.DecisionSimSwap, r.Kind())
	assert.Equal(t, "user-42", r.SubjectID())
	assert.Equal(t, 95, r.Score())
	require.Len(t, r.DomainEvents(), 1)
	assert.Equal(t, event.EventTypeHighRiskDetected, r.DomainEvents()[0].EventType())

	low := model.NewSimSwapDecision("", "+99999991001", model.RiskAssessment{Score: 15, Tier: valueobject.TierLowRisk}, time.Now())
	assert.Empty(t, low.DomainEvents())
}

func TestReconstructDecisionRecord(t *testing.T) {
	orig := model.NewSimSwapDecision("u", "+99999991000", highRiskAssessment(), time.Now())

	r := model.ReconstructDecisionRecord(orig.ID(), orig.Kind(), orig.SubjectID(), orig.PhoneNumber(),
		orig.Score(), orig.Tier(), orig.Outcome(), nil, nil, orig.CreatedAt())

	assert.Equal(t, orig.ID(), r.ID())
	assert.Equal(t, []string{}, r.Factors())
	assert.Empty(t, r.DomainEvents())
}

func TestParseDecisionKind(t *testing.T) {
	k, err := model.ParseDecisionKind("transaction")
	require.NoError(t, err)
	assert.Equal(t, model.DecisionTransaction, k)

	_, err = model.ParseDecisionKind("loan")
	assert.Error(t, err)
}
