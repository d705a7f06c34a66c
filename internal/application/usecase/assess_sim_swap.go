package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dispatch"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/service"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/metrics"
)

// Look-back bounds accepted by the SIM swap check.
const (
	DefaultSimSwapMaxAgeHours = 240
	MaxSimSwapMaxAgeHours     = 2400
)

// AssessSimSwap is the use case that scores a number's SIM swap status on its
// own and enacts the prescribed actions.
type AssessSimSwap struct {
	signals    *SignalCollector
	policy     service.OnboardingScorer
	dispatcher ActionDispatcher
	recorder   *DecisionRecorder
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewAssessSimSwap creates a new AssessSimSwap use case.
func NewAssessSimSwap(
	signals *SignalCollector,
	policy service.OnboardingScorer,
	dispatcher ActionDispatcher,
	recorder *DecisionRecorder,
	logger *slog.Logger,
	m *metrics.Metrics,
) *AssessSimSwap {
	return &AssessSimSwap{
		signals:    signals,
		policy:     policy,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger,
		metrics:    m,
	}
}

// Execute checks the SIM, evaluates the signal and dispatches the actions.
// A failed check returns the ERROR signal with no assessment and no actions.
func (uc *AssessSimSwap) Execute(ctx context.Context, req dto.SimSwapRequest) (dto.SimSwapResponse, error) {
	start := time.Now()

	phone, err := valueobject.NewPhoneNumber(req.PhoneNumber)
	if err != nil {
		return dto.SimSwapResponse{}, fmt.Errorf("assess sim swap: %w", apperrors.NewValidationError("phone_number", err.Error()))
	}
	maxAge := req.MaxAgeHours
	if maxAge == 0 {
		maxAge = DefaultSimSwapMaxAgeHours
	}
	if maxAge < 1 || maxAge > MaxSimSwapMaxAgeHours {
		return dto.SimSwapResponse{}, fmt.Errorf("assess sim swap: %w",
			apperrors.NewValidationError("max_age_hours", fmt.Sprintf("must be between 1 and %d", MaxSimSwapMaxAgeHours)))
	}

	ctx, span := tracer.Start(ctx, "AssessSimSwap", spanAttrs(attribute.Int("sim_swap.max_age_hours", maxAge)))
	defer span.End()

	signal := uc.signals.SimSwap(ctx, phone.String(), maxAge)
	resp := dto.SimSwapResponse{Signal: dto.FromSimSwapSignal(signal)}

	if signal.Failed() {
		uc.logger.WarnContext(ctx, "sim swap assessment skipped",
			"phone", phone.Masked(),
			"recommendation", signal.Recommendation(),
		)
		return resp, nil
	}

	assessment := uc.policy.Evaluate(signal)
	resp.Assessment = dto.FromAssessment(assessment)

	subject := req.UserID
	if subject == "" {
		subject = phone.String()
	}
	report := uc.dispatcher.Dispatch(ctx, dispatch.Request{
		SubjectID:   subject,
		PhoneNumber: phone.String(),
		Assessment:  assessment,
	}, assessment.Actions)
	resp.Actions = dto.FromReport(report)

	resp.DecisionID = uc.recorder.Record(ctx, model.NewSimSwapDecision(subject, phone.String(), assessment, time.Now()))

	span.SetAttributes(attribute.String("risk.tier", assessment.Tier.String()), attribute.Int("risk.score", assessment.Score))
	uc.metrics.ObservePipelineLatency(string(model.DecisionSimSwap), time.Since(start))
	uc.logger.InfoContext(ctx, "sim swap assessed",
		"phone", phone.Masked(),
		"tier", assessment.Tier.String(),
		"score", assessment.Score,
		"failed_actions", len(report.Failed()),
	)

	return resp, nil
}
