package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

func TestRiskLevel_FromScore(t *testing.T) {
	tests := []struct {
		score    int
		expected valueobject.RiskLevel
	}{
		{0, valueobject.RiskLevelLow},
		{19, valueobject.RiskLevelLow},
		{20, valueobject.RiskLevelMedium},
		{39, valueobject.RiskLevelMedium},
		{40, valueobject.RiskLevelHigh},
		{69, valueobject.RiskLevelHigh},
		{70, valueobject.RiskLevelCritical},
		{100, valueobject.RiskLevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.True(t, tt.expected.Equal(valueobject.RiskLevelFromScore(tt.score)), "score %d", tt.score)
		})
	}
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskLevel
		wantErr  bool
	}{
		{"LOW", valueobject.RiskLevelLow, false},
		{"MEDIUM", valueobject.RiskLevelMedium, false},
		{"HIGH", valueobject.RiskLevelHigh, false},
		{"CRITICAL", valueobject.RiskLevelCritical, false},
		{"low", valueobject.RiskLevel{}, true},
		{"", valueobject.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestRiskLevel_Flags(t *testing.T) {
	tests := []struct {
		level        valueobject.RiskLevel
		approves     bool
		confirmation bool
		blocks       bool
		action       string
	}{
		{valueobject.RiskLevelLow, true, false, false, "ALLOW transaction."},
		{valueobject.RiskLevelMedium, true, false, false, "PROCEED with caution. Send SMS alert."},
		{valueobject.RiskLevelHigh, false, true, false, "PAUSE transaction. Send voice alert."},
		{valueobject.RiskLevelCritical, false, false, true, "BLOCK transaction immediately. Require manual verification."},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.approves, tt.level.Approves())
			assert.Equal(t, tt.confirmation, tt.level.RequiresUserConfirmation())
			assert.Equal(t, tt.blocks, tt.level.Blocks())
			assert.Equal(t, tt.action, tt.level.RecommendedAction())
		})
	}
}

func TestRiskLevel_IsZero(t *testing.T) {
	assert.True(t, valueobject.RiskLevel{}.IsZero())
	assert.False(t, valueobject.RiskLevelLow.IsZero())
}
