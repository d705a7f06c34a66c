package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/service"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/metrics"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/join"
)

// TransactionMaxAgeHours is the SIM swap look-back used for transactions.
const TransactionMaxAgeHours = 24

// MonitorTransaction is the use case that scores a transaction against fresh
// telecom signals.
type MonitorTransaction struct {
	signals  *SignalCollector
	policy   service.TransactionScorer
	recorder *DecisionRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewMonitorTransaction creates a new MonitorTransaction use case.
func NewMonitorTransaction(
	signals *SignalCollector,
	policy service.TransactionScorer,
	recorder *DecisionRecorder,
	logger *slog.Logger,
	m *metrics.Metrics,
) *MonitorTransaction {
	return &MonitorTransaction{
		signals:  signals,
		policy:   policy,
		recorder: recorder,
		logger:   logger,
		metrics:  m,
	}
}

// Execute collects both signals concurrently, scores the transaction and
// records the decision. Only validation errors are returned.
func (uc *MonitorTransaction) Execute(ctx context.Context, req dto.TransactionRequest) (dto.TransactionResponse, error) {
	start := time.Now()

	txn, err := model.NewTransactionEvent(req.PhoneNumber, req.Amount, req.TransactionType, req.MerchantName, start)
	if err != nil {
		return dto.TransactionResponse{}, fmt.Errorf("monitor transaction: %w", err)
	}

	ctx, span := tracer.Start(ctx, "MonitorTransaction", spanAttrs(
		attribute.String("transaction.id", txn.ID.String()),
		attribute.String("transaction.type", txn.Type),
	))
	defer span.End()

	phone := txn.PhoneNumber.String()

	// Each branch writes only its own slot.
	var (
		simSwap   model.SimSwapSignal
		ownership model.OwnershipSignal
	)
	errs := join.Run(ctx,
		func(ctx context.Context) error {
			simSwap = uc.signals.SimSwap(ctx, phone, TransactionMaxAgeHours)
			return nil
		},
		func(ctx context.Context) error {
			ownership = uc.signals.Ownership(ctx, phone)
			return nil
		},
	)
	// A branch only errors if it panicked; fall back to ERROR signals.
	if errs[0] != nil {
		simSwap = model.NewSimSwapErrorSignal(phone, TransactionMaxAgeHours, errs[0])
	}
	if errs[1] != nil {
		ownership = model.NewOwnershipErrorSignal(phone, errs[1])
	}

	amount := txn.Amount
	risk := uc.policy.Evaluate(service.TransactionInput{
		SimSwap:        simSwap.TransactionStatus(),
		NumberVerified: ownership.Verified(),
		LocationMatch:  true,
		Amount:         &amount,
	})

	resp := dto.TransactionResponse{
		TransactionID:            txn.ID,
		Approved:                 risk.Approved(),
		RiskLevel:                risk.Level.String(),
		RiskScore:                risk.Score,
		Factors:                  risk.Factors,
		Action:                   risk.Action,
		RequiresUserConfirmation: risk.RequiresUserConfirmation(),
		Blocked:                  risk.Blocked(),
		Message:                  service.TransactionAlert(risk, txn.Type, txn.Amount),
		SimSwap:                  dto.FromSimSwapSignal(simSwap),
		Ownership:                dto.FromOwnershipSignal(ownership),
	}

	resp.DecisionID = uc.recorder.Record(ctx, model.NewTransactionDecision(txn, risk, time.Now()))

	span.SetAttributes(attribute.String("risk.level", resp.RiskLevel), attribute.Int("risk.score", resp.RiskScore))
	uc.metrics.ObservePipelineLatency(string(model.DecisionTransaction), time.Since(start))
	uc.logger.InfoContext(ctx, "transaction assessed",
		"transaction_id", txn.ID,
		"phone", txn.PhoneNumber.Masked(),
		"risk_level", resp.RiskLevel,
		"risk_score", resp.RiskScore,
		"blocked", resp.Blocked,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}
