package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the transaction risk tier.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// Score thresholds for the transaction tiers. Boundaries are inclusive.
const (
	CriticalThreshold = 70
	HighThreshold     = 40
	MediumThreshold   = 20
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from a numeric score (0-100).
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= CriticalThreshold:
		return RiskLevelCritical
	case score >= HighThreshold:
		return RiskLevelHigh
	case score >= MediumThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// RecommendedAction returns the operator-facing instruction for this tier.
func (r RiskLevel) RecommendedAction() string {
	switch r.value {
	case "CRITICAL":
		return "BLOCK transaction immediately. Require manual verification."
	case "HIGH":
		return "PAUSE transaction. Send voice alert."
	case "MEDIUM":
		return "PROCEED with caution. Send SMS alert."
	case "LOW":
		return "ALLOW transaction."
	default:
		return ""
	}
}

// Approves reports whether a transaction in this tier may proceed.
func (r RiskLevel) Approves() bool {
	return r == RiskLevelLow || r == RiskLevelMedium
}

// RequiresUserConfirmation is true only for HIGH.
func (r RiskLevel) RequiresUserConfirmation() bool {
	return r == RiskLevelHigh
}

// Blocks is true only for CRITICAL.
func (r RiskLevel) Blocks() bool {
	return r == RiskLevelCritical
}

// MarshalText implements encoding.TextMarshaler.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RiskLevel) UnmarshalText(b []byte) error {
	parsed, err := RiskLevelFromString(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
