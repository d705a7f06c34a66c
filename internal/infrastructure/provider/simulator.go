package provider

import (
	"context"
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface checks.
var (
	_ port.SimSwapProvider   = (*Simulator)(nil)
	_ port.OwnershipProvider = (*Simulator)(nil)
)

// Sandbox numbers understood by the simulator.
const (
	SimulatorSwappedNumber = "+99999991000"
	SimulatorCleanNumber   = "+99999991001"

	simulatorProviderName = "simulator"
	simulatorHint         = "Use simulator numbers: +99999991000 or +99999991001"
)

// SimulatorSwapDate is the SIM change reported for SimulatorSwappedNumber.
var SimulatorSwapDate = time.Date(2024, 11, 29, 10, 42, 0, 0, time.UTC)

// Simulator answers signal requests from fixed sandbox fixtures. It never
// touches the network.
type Simulator struct{}

// NewSimulator creates a new Simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// CheckSimSwap reports a swap for the swapped sandbox number and none for the
// clean one. Any other number is rejected.
func (s *Simulator) CheckSimSwap(ctx context.Context, phoneNumber string, _ int) (port.SimSwapResult, error) {
	if err := ctx.Err(); err != nil {
		return port.SimSwapResult{}, apperrors.NewProviderError(apperrors.ProviderTimeout, simulatorProviderName, "request cancelled", err)
	}
	switch phoneNumber {
	case SimulatorSwappedNumber:
		d := SimulatorSwapDate
		return port.SimSwapResult{Swapped: true, SwapDate: &d}, nil
	case SimulatorCleanNumber:
		return port.SimSwapResult{Swapped: false}, nil
	default:
		return port.SimSwapResult{}, apperrors.NewProviderError(apperrors.ProviderBadData, simulatorProviderName, simulatorHint, nil)
	}
}

// VerifyOwnership verifies both sandbox numbers. Any other number is rejected.
func (s *Simulator) VerifyOwnership(ctx context.Context, phoneNumber string) (port.OwnershipResult, error) {
	if err := ctx.Err(); err != nil {
		return port.OwnershipResult{}, apperrors.NewProviderError(apperrors.ProviderTimeout, simulatorProviderName, "request cancelled", err)
	}
	switch phoneNumber {
	case SimulatorSwappedNumber, SimulatorCleanNumber:
		return port.OwnershipResult{Verified: true}, nil
	default:
		return port.OwnershipResult{}, apperrors.NewProviderError(apperrors.ProviderBadData, simulatorProviderName, simulatorHint, nil)
	}
}
