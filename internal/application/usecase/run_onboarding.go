package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dispatch"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/service"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/metrics"
)

// OnboardingMaxAgeHours is the SIM swap look-back used during onboarding.
const OnboardingMaxAgeHours = 240

// Onboarding stage names, in execution order.
const (
	StageGreetUser    = "greet_user"
	StageCheckSimSwap = "check_sim_swap"
	StageVerifyNumber = "verify_number"
	StageMakeDecision = "make_decision"
)

// ScoreSource selects which score the final onboarding decision reads.
type ScoreSource string

const (
	// ScoreFromSession reads the session risk score, which no executed stage
	// sets, so every completed run is approved.
	ScoreFromSession ScoreSource = "session"
	// ScoreFromAssessment copies the SIM swap assessment score into the
	// session before deciding. A failed SIM swap check ends the session in
	// manual review.
	ScoreFromAssessment ScoreSource = "assessment"
)

// ParseScoreSource validates a configured score source.
func ParseScoreSource(s string) (ScoreSource, error) {
	switch ScoreSource(s) {
	case ScoreFromSession, ScoreFromAssessment:
		return ScoreSource(s), nil
	default:
		return "", fmt.Errorf("invalid onboarding score source %q (want session or assessment)", s)
	}
}

// ActionDispatcher enacts the actions of an assessment.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request, actions []valueobject.Action) dispatch.Report
}

// onboardingState is threaded through the stages. Each stage returns a new
// state; the signals and assessment are filled in as they are collected.
type onboardingState struct {
	session    model.OnboardingSession
	simSwap    *model.SimSwapSignal
	ownership  *model.OwnershipSignal
	assessment *model.RiskAssessment
}

type stage struct {
	run  func(ctx context.Context, st onboardingState) onboardingState
	name string
}

// RunOnboarding is the use case that walks a new subscriber through the
// fixed onboarding stages and enacts the resulting actions.
type RunOnboarding struct {
	signals     *SignalCollector
	policy      service.OnboardingScorer
	dispatcher  ActionDispatcher
	recorder    *DecisionRecorder
	logger      *slog.Logger
	metrics     *metrics.Metrics
	scoreSource ScoreSource
	stages      []stage
}

// NewRunOnboarding creates a new RunOnboarding use case.
func NewRunOnboarding(
	signals *SignalCollector,
	policy service.OnboardingScorer,
	dispatcher ActionDispatcher,
	recorder *DecisionRecorder,
	scoreSource ScoreSource,
	logger *slog.Logger,
	m *metrics.Metrics,
) *RunOnboarding {
	if scoreSource == "" {
		scoreSource = ScoreFromSession
	}
	uc := &RunOnboarding{
		signals:     signals,
		policy:      policy,
		dispatcher:  dispatcher,
		recorder:    recorder,
		logger:      logger,
		metrics:     m,
		scoreSource: scoreSource,
	}
	uc.stages = []stage{
		{name: StageGreetUser, run: uc.greetUser},
		{name: StageCheckSimSwap, run: uc.checkSimSwap},
		{name: StageVerifyNumber, run: uc.verifyNumber},
		{name: StageMakeDecision, run: uc.makeDecision},
	}
	return uc
}

// StageNames lists the stages in execution order.
func (uc *RunOnboarding) StageNames() []string {
	names := make([]string, len(uc.stages))
	for i, s := range uc.stages {
		names[i] = s.name
	}
	return names
}

// Execute validates the request, runs every stage, dispatches the SIM swap
// assessment's actions and records the decision. Only validation errors are
// returned; provider and action failures are reflected in the response.
func (uc *RunOnboarding) Execute(ctx context.Context, req dto.OnboardingRequest) (dto.OnboardingResponse, error) {
	start := time.Now()

	session, err := model.NewOnboardingSession(req.PhoneNumber, req.UserName, req.Language, start)
	if err != nil {
		return dto.OnboardingResponse{}, fmt.Errorf("run onboarding: %w", err)
	}

	ctx, span := tracer.Start(ctx, "RunOnboarding", spanAttrs(
		attribute.String("session.id", session.ID.String()),
	))
	defer span.End()

	logger := uc.logger.With("session_id", session.ID, "phone", session.PhoneNumber.Masked())

	st := onboardingState{session: session}
	for _, s := range uc.stages {
		st = s.run(ctx, st)
		logger.DebugContext(ctx, "onboarding stage complete", "stage", s.name, "next_step", st.session.NextStep)
		if st.session.Status.IsTerminal() {
			break
		}
	}

	resp := dto.OnboardingResponse{
		SessionID:      st.session.ID,
		Status:         string(st.session.Status),
		RiskScore:      st.session.RiskScore,
		Messages:       st.session.Messages,
		NextStep:       st.session.NextStep,
		SimSwapChecked: st.session.SimSwapChecked,
		NumberVerified: st.session.NumberVerified,
	}
	if st.simSwap != nil {
		s := dto.FromSimSwapSignal(*st.simSwap)
		resp.SimSwap = &s
	}
	if st.ownership != nil {
		o := dto.FromOwnershipSignal(*st.ownership)
		resp.Ownership = &o
	}

	if st.assessment != nil {
		resp.Assessment = dto.FromAssessment(*st.assessment)
		report := uc.dispatcher.Dispatch(ctx, dispatch.Request{
			SubjectID:   st.session.ID.String(),
			PhoneNumber: st.session.PhoneNumber.String(),
			Assessment:  *st.assessment,
		}, st.assessment.Actions)
		resp.Actions = dto.FromReport(report)
	}

	record := model.NewOnboardingDecision(st.session, st.assessment, time.Now())
	resp.DecisionID = uc.recorder.Record(ctx, record)

	span.SetAttributes(attribute.String("onboarding.status", resp.Status), attribute.Int("onboarding.risk_score", resp.RiskScore))
	uc.metrics.ObservePipelineLatency(string(model.DecisionOnboarding), time.Since(start))
	logger.InfoContext(ctx, "onboarding complete",
		"status", resp.Status,
		"risk_score", resp.RiskScore,
		"tier", record.Tier(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}

func (uc *RunOnboarding) greetUser(_ context.Context, st onboardingState) onboardingState {
	s := st.session
	s.Status = valueobject.OnboardingInProgress
	st.session = s.Say(service.Greeting(s.Language, s.DisplayName(), s.PhoneNumber.String()), "Checking SIM swap status...")
	return st
}

func (uc *RunOnboarding) checkSimSwap(ctx context.Context, st onboardingState) onboardingState {
	signal := uc.signals.SimSwap(ctx, st.session.PhoneNumber.String(), OnboardingMaxAgeHours)
	st.simSwap = &signal

	if !signal.Failed() {
		a := uc.policy.Evaluate(signal)
		st.assessment = &a
	}

	s := st.session
	s.SimSwapChecked = true
	s = s.Say("SIM Swap Check: "+signal.Message(), "Verifying phone number...")

	// With the assessment score in force, an unknown SIM swap status must
	// not fall through to an approval.
	if signal.Failed() && uc.scoreSource == ScoreFromAssessment {
		a := service.UnverifiedSimSwapAssessment()
		st.assessment = &a
		s.RiskScore = a.Score
		verdict := service.EscalateOnboarding()
		s.Status = verdict.Status
		s = s.Say(verdict.Message, "Manual verification")
		uc.logger.WarnContext(ctx, "onboarding escalated after sim swap check failure",
			"session_id", s.ID,
			"error", signal.Err(),
		)
	}

	st.session = s
	return st
}

func (uc *RunOnboarding) verifyNumber(ctx context.Context, st onboardingState) onboardingState {
	signal := uc.signals.Ownership(ctx, st.session.PhoneNumber.String())
	st.ownership = &signal

	s := st.session
	s.NumberVerified = signal.Verified()
	st.session = s.Say("Number Verification: "+signal.Message(), "Checking device status...")
	return st
}

func (uc *RunOnboarding) makeDecision(ctx context.Context, st onboardingState) onboardingState {
	s := st.session

	if st.assessment != nil && st.assessment.Score != s.RiskScore {
		if uc.scoreSource == ScoreFromAssessment {
			s.RiskScore = st.assessment.Score
		} else {
			uc.logger.WarnContext(ctx, "onboarding decision ignores sim swap assessment score",
				"session_id", s.ID,
				"session_score", s.RiskScore,
				"assessment_score", st.assessment.Score,
				"assessment_tier", st.assessment.Tier.String(),
			)
		}
	}

	verdict := service.DecideOnboarding(s.RiskScore, s.DisplayName())
	s.Status = verdict.Status
	st.session = s.Say(verdict.Message, "Complete")
	return st
}
