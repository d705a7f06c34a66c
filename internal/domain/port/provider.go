package port

import (
	"context"
	"time"
)

// SimSwapResult is the typed response of a SIM swap check.
type SimSwapResult struct {
	SwapDate *time.Time
	Swapped  bool
}

// OwnershipResult is the typed response of a number verification.
type OwnershipResult struct {
	Verified bool
}

// SimSwapProvider checks whether a number's SIM changed within maxAgeHours.
// Failures are returned as *apperrors.ProviderError.
type SimSwapProvider interface {
	CheckSimSwap(ctx context.Context, phoneNumber string, maxAgeHours int) (SimSwapResult, error)
}

// OwnershipProvider verifies that a number belongs to the requesting device.
// Failures are returned as *apperrors.ProviderError.
type OwnershipProvider interface {
	VerifyOwnership(ctx context.Context, phoneNumber string) (OwnershipResult, error)
}
