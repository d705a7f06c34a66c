package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/event"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
)

// DecisionKind names the pipeline that produced a decision.
type DecisionKind string

const (
	DecisionOnboarding  DecisionKind = "onboarding"
	DecisionTransaction DecisionKind = "transaction"
	DecisionSimSwap     DecisionKind = "sim_swap"
)

// ParseDecisionKind validates a stored decision kind.
func ParseDecisionKind(s string) (DecisionKind, error) {
	switch DecisionKind(s) {
	case DecisionOnboarding, DecisionTransaction, DecisionSimSwap:
		return DecisionKind(s), nil
	default:
		return "", fmt.Errorf("invalid decision kind: %q", s)
	}
}

// Transaction decision outcomes.
const (
	OutcomeApproved             = "approved"
	OutcomeConfirmationRequired = "confirmation_required"
	OutcomeBlocked              = "blocked"
)

// DecisionRecord is the aggregate root persisted for every pipeline decision.
type DecisionRecord struct {
	createdAt   time.Time
	kind        DecisionKind
	subjectID   string
	phoneNumber string
	tier        string
	outcome     string
	factors     []string
	actions     []string
	collector   events.EventCollector
	score       int
	id          uuid.UUID
}

// NewOnboardingDecision records the terminal state of an onboarding session.
// assessment is nil when the SIM swap signal could not be evaluated.
func NewOnboardingDecision(session OnboardingSession, assessment *RiskAssessment, now time.Time) *DecisionRecord {
	r := &DecisionRecord{
		id:          uuid.New(),
		kind:        DecisionOnboarding,
		subjectID:   session.ID.String(),
		phoneNumber: session.PhoneNumber.String(),
		score:       session.RiskScore,
		outcome:     string(session.Status),
		factors:     []string{},
		actions:     []string{},
		createdAt:   now.UTC(),
	}
	if assessment != nil {
		r.tier = assessment.Tier.String()
		r.factors = append(r.factors, assessment.Reasons...)
		r.actions = actionStrings(assessment.Actions)
	}

	r.collector.Record(event.NewOnboardingDecided(
		r.id, session.ID, r.phoneNumber, r.outcome, r.score, r.tier, r.actions, r.createdAt,
	))
	if assessment != nil && assessment.Tier.Equal(valueobject.TierHighRisk) {
		r.collector.Record(event.NewHighRiskDetected(
			r.id, string(r.kind), r.phoneNumber, assessment.Score, r.tier, r.factors, r.createdAt,
		))
	}
	return r
}

// NewTransactionDecision records the verdict on a monitored transaction.
func NewTransactionDecision(txn TransactionEvent, risk TransactionRisk, now time.Time) *DecisionRecord {
	outcome := OutcomeApproved
	switch {
	case risk.Blocked():
		outcome = OutcomeBlocked
	case risk.RequiresUserConfirmation():
		outcome = OutcomeConfirmationRequired
	}

	r := &DecisionRecord{
		id:          uuid.New(),
		kind:        DecisionTransaction,
		subjectID:   txn.ID.String(),
		phoneNumber: txn.PhoneNumber.String(),
		score:       risk.Score,
		tier:        risk.Level.String(),
		outcome:     outcome,
		factors:     append([]string{}, risk.Factors...),
		actions:     []string{},
		createdAt:   now.UTC(),
	}

	r.collector.Record(event.NewTransactionAssessed(
		r.id, txn.ID, r.phoneNumber, txn.Amount.String(), r.score, r.tier,
		risk.Approved(), risk.Blocked(), r.factors, r.createdAt,
	))
	if risk.Blocked() {
		r.collector.Record(event.NewHighRiskDetected(
			r.id, string(r.kind), r.phoneNumber, r.score, r.tier, r.factors, r.createdAt,
		))
	}
	return r
}

// NewSimSwapDecision records a standalone SIM swap assessment.
func NewSimSwapDecision(subjectID, phoneNumber string, assessment RiskAssessment, now time.Time) *DecisionRecord {
	r := &DecisionRecord{
		id:          uuid.New(),
		kind:        DecisionSimSwap,
		subjectID:   subjectID,
		phoneNumber: phoneNumber,
		score:       assessment.Score,
		tier:        assessment.Tier.String(),
		outcome:     assessment.Tier.String(),
		factors:     append([]string{}, assessment.Reasons...),
		actions:     actionStrings(assessment.Actions),
		createdAt:   now.UTC(),
	}
	if assessment.Tier.Equal(valueobject.TierHighRisk) {
		r.collector.Record(event.NewHighRiskDetected(
			r.id, string(r.kind), r.phoneNumber, r.score, r.tier, r.factors, r.createdAt,
		))
	}
	return r
}

// ReconstructDecisionRecord rebuilds a record from persistence without emitting events.
func ReconstructDecisionRecord(
	id uuid.UUID,
	kind DecisionKind,
	subjectID, phoneNumber string,
	score int,
	tier, outcome string,
	factors, actions []string,
	createdAt time.Time,
) *DecisionRecord {
	if factors == nil {
		factors = []string{}
	}
	if actions == nil {
		actions = []string{}
	}
	return &DecisionRecord{
		id:          id,
		kind:        kind,
		subjectID:   subjectID,
		phoneNumber: phoneNumber,
		score:       score,
		tier:        tier,
		outcome:     outcome,
		factors:     factors,
		actions:     actions,
		createdAt:   createdAt,
	}
}

func (r *DecisionRecord) ID() uuid.UUID        { return r.id }
func (r *DecisionRecord) Kind() DecisionKind   { return r.kind }
func (r *DecisionRecord) SubjectID() string    { return r.subjectID }
func (r *DecisionRecord) PhoneNumber() string  { return r.phoneNumber }
func (r *DecisionRecord) Score() int           { return r.score }
func (r *DecisionRecord) Tier() string         { return r.tier }
func (r *DecisionRecord) Outcome() string      { return r.outcome }
func (r *DecisionRecord) Factors() []string    { return r.factors }
func (r *DecisionRecord) Actions() []string    { return r.actions }
func (r *DecisionRecord) CreatedAt() time.Time { return r.createdAt }

// DomainEvents returns the events raised while building the record.
func (r *DecisionRecord) DomainEvents() []events.DomainEvent {
	return r.collector.Events()
}

// ClearDomainEvents drops raised events once they have been published.
func (r *DecisionRecord) ClearDomainEvents() {
	r.collector.ClearEvents()
}

func actionStrings(actions []valueobject.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}
