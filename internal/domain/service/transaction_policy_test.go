package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/service"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestTransactionPolicy_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		input   service.TransactionInput
		score   int
		level   valueobject.RiskLevel
		factors []string
	}{
		{
			name:    "clean small transaction",
			input:   service.TransactionInput{SimSwap: valueobject.SimSwapSafe, NumberVerified: true, LocationMatch: true, Amount: amount(100)},
			score:   0,
			level:   valueobject.RiskLevelLow,
			factors: []string{},
		},
		{
			name:  "swapped unverified large amount",
			input: service.TransactionInput{SimSwap: valueobject.SimSwapSwapped, NumberVerified: false, LocationMatch: true, Amount: amount(60000)},
			score: 80,
			level: valueobject.RiskLevelCritical,
			factors: []string{
				service.FactorSimSwap,
				service.FactorNotVerified,
				service.FactorHighAmount,
			},
		},
		{
			name:    "all factors clamp to 100",
			input:   service.TransactionInput{SimSwap: valueobject.SimSwapSwapped, Amount: amount(1000000)},
			score:   100,
			level:   valueobject.RiskLevelCritical,
			factors: []string{service.FactorSimSwap, service.FactorNotVerified, service.FactorLocation, service.FactorHighAmount},
		},
		{
			name:    "unknown sim status with unverified number",
			input:   service.TransactionInput{SimSwap: valueobject.SimSwapUnknown, LocationMatch: true},
			score:   30,
			level:   valueobject.RiskLevelMedium,
			factors: []string{service.FactorNotVerified},
		},
		{
			name:    "swap alone is HIGH",
			input:   service.TransactionInput{SimSwap: valueobject.SimSwapSwapped, NumberVerified: true, LocationMatch: true},
			score:   40,
			level:   valueobject.RiskLevelHigh,
			factors: []string{service.FactorSimSwap},
		},
		{
			name:    "location mismatch alone is MEDIUM",
			input:   service.TransactionInput{SimSwap: valueobject.SimSwapSafe, NumberVerified: true},
			score:   20,
			level:   valueobject.RiskLevelMedium,
			factors: []string{service.FactorLocation},
		},
		{
			name:    "amount of exactly 50000 is not high",
			input:   service.TransactionInput{SimSwap: valueobject.SimSwapSafe, NumberVerified: true, LocationMatch: true, Amount: amount(50000)},
			score:   0,
			level:   valueobject.RiskLevelLow,
			factors: []string{},
		},
		{
			name:    "missing amount never adds risk",
			input:   service.TransactionInput{SimSwap: valueobject.SimSwapSafe, NumberVerified: true, LocationMatch: true},
			score:   0,
			level:   valueobject.RiskLevelLow,
			factors: []string{},
		},
	}

	policy := service.NewTransactionPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Evaluate(tt.input)
			assert.Equal(t, tt.score, got.Score)
			assert.True(t, tt.level.Equal(got.Level), "level %s", got.Level)
			assert.Equal(t, tt.factors, got.Factors)
			assert.Equal(t, tt.level.RecommendedAction(), got.Action)
		})
	}
}

func TestTransactionPolicy_DecisionFlags(t *testing.T) {
	policy := service.NewTransactionPolicy()

	critical := policy.Evaluate(service.TransactionInput{SimSwap: valueobject.SimSwapSwapped, LocationMatch: true, Amount: amount(60000)})
	assert.False(t, critical.Approved())
	assert.True(t, critical.Blocked())
	assert.False(t, critical.RequiresUserConfirmation())

	low := policy.Evaluate(service.TransactionInput{SimSwap: valueobject.SimSwapSafe, NumberVerified: true, LocationMatch: true, Amount: amount(100)})
	assert.True(t, low.Approved())
	assert.False(t, low.Blocked())

	high := policy.Evaluate(service.TransactionInput{SimSwap: valueobject.SimSwapSwapped, NumberVerified: true, LocationMatch: true})
	assert.False(t, high.Approved())
	assert.True(t, high.RequiresUserConfirmation())
}

func TestTransactionPolicy_Idempotent(t *testing.T) {
	policy := service.NewTransactionPolicy()
	input := service.TransactionInput{SimSwap: valueobject.SimSwapSwapped, NumberVerified: false, LocationMatch: true, Amount: amount(75000)}

	assert.Equal(t, policy.Evaluate(input), policy.Evaluate(input))
}
