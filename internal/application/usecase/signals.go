package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/metrics"
)

// SignalCollector fetches telecom signals and turns every provider failure
// into an ERROR signal, so pipelines never see a provider error.
type SignalCollector struct {
	simSwap   port.SimSwapProvider
	ownership port.OwnershipProvider
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewSignalCollector creates a SignalCollector. now defaults to time.Now.
func NewSignalCollector(
	simSwap port.SimSwapProvider,
	ownership port.OwnershipProvider,
	logger *slog.Logger,
	m *metrics.Metrics,
	now func() time.Time,
) *SignalCollector {
	if now == nil {
		now = time.Now
	}
	return &SignalCollector{
		simSwap:   simSwap,
		ownership: ownership,
		logger:    logger,
		metrics:   m,
		now:       now,
	}
}

// SimSwap checks the number's SIM swap status over the last maxAgeHours.
func (c *SignalCollector) SimSwap(ctx context.Context, phoneNumber string, maxAgeHours int) model.SimSwapSignal {
	start := time.Now()
	result, err := c.simSwap.CheckSimSwap(ctx, phoneNumber, maxAgeHours)

	var signal model.SimSwapSignal
	if err != nil {
		signal = model.NewSimSwapErrorSignal(phoneNumber, maxAgeHours, err)
		c.logger.WarnContext(ctx, "sim swap check failed",
			"category", apperrors.ProviderCategoryOf(err),
			"max_age_hours", maxAgeHours,
			"error", err,
		)
	} else {
		signal = model.NewSimSwapSignal(phoneNumber, maxAgeHours, result.Swapped, result.SwapDate, c.now())
	}

	c.metrics.ObserveSignalLatency("sim_swap", string(signal.Status()), time.Since(start))
	return signal
}

// Ownership verifies that the number belongs to the requesting device.
func (c *SignalCollector) Ownership(ctx context.Context, phoneNumber string) model.OwnershipSignal {
	start := time.Now()
	result, err := c.ownership.VerifyOwnership(ctx, phoneNumber)

	var signal model.OwnershipSignal
	if err != nil {
		signal = model.NewOwnershipErrorSignal(phoneNumber, err)
		c.logger.WarnContext(ctx, "number verification failed",
			"category", apperrors.ProviderCategoryOf(err),
			"error", err,
		)
	} else {
		signal = model.NewOwnershipSignal(phoneNumber, result.Verified)
	}

	c.metrics.ObserveSignalLatency("ownership", string(signal.Status()), time.Since(start))
	return signal
}
