package service

import (
	"github.com/shopspring/decimal"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

// Factor labels, in evaluation order.
const (
	FactorSimSwap     = "Recent SIM swap detected"
	FactorNotVerified = "Phone number not verified"
	FactorLocation    = "Location mismatch detected"
	FactorHighAmount  = "High transaction amount"
)

const (
	simSwapPoints     = 40
	notVerifiedPoints = 30
	locationPoints    = 20
	highAmountPoints  = 10
)

// HighAmountThreshold is the amount above which a transaction adds risk.
var HighAmountThreshold = decimal.NewFromInt(50000)

// TransactionInput contains the signals gathered for one transaction.
type TransactionInput struct {
	Amount         *decimal.Decimal
	SimSwap        valueobject.SimSwapStatus
	NumberVerified bool
	LocationMatch  bool
}

// TransactionPolicy scores transactions against the stricter transaction tiers.
// Pure domain logic - no I/O.
type TransactionPolicy struct{}

// NewTransactionPolicy creates a new TransactionPolicy.
func NewTransactionPolicy() *TransactionPolicy {
	return &TransactionPolicy{}
}

// Evaluate adds weighted points for each triggered factor and maps the total
// onto a risk level. An unknown SIM swap status contributes nothing.
func (p *TransactionPolicy) Evaluate(input TransactionInput) model.TransactionRisk {
	score := 0
	factors := make([]string, 0, 4)

	// Rule: SIM swapped recently.
	if input.SimSwap == valueobject.SimSwapSwapped {
		score += simSwapPoints
		factors = append(factors, FactorSimSwap)
	}

	// Rule: number not bound to the device.
	if !input.NumberVerified {
		score += notVerifiedPoints
		factors = append(factors, FactorNotVerified)
	}

	// Rule: device location does not match.
	if !input.LocationMatch {
		score += locationPoints
		factors = append(factors, FactorLocation)
	}

	// Rule: large amount.
	if input.Amount != nil && input.Amount.GreaterThan(HighAmountThreshold) {
		score += highAmountPoints
		factors = append(factors, FactorHighAmount)
	}

	score = clamp(score)
	level := valueobject.RiskLevelFromScore(score)

	return model.TransactionRisk{
		Score:   score,
		Level:   level,
		Factors: factors,
		Action:  level.RecommendedAction(),
	}
}
