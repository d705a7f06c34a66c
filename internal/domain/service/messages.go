package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

// Greeting returns the opening onboarding message in the session language.
// Hindi is used for "hi"; every other language falls back to English.
func Greeting(language, name, phoneNumber string) string {
	if language == model.LanguageHindi {
		return fmt.Sprintf("नमस्ते %s! FinSentinel में आपका स्वागत है। हम %s के लिए सुरक्षित ऑनबोर्डिंग प्रक्रिया शुरू कर रहे हैं।", name, phoneNumber)
	}
	return fmt.Sprintf("Hello %s! Welcome to FinSentinel. We'll guide you through a secure onboarding process for %s.", name, phoneNumber)
}

// TransactionAlert returns the user-facing message for a transaction verdict.
func TransactionAlert(risk model.TransactionRisk, txType string, amount decimal.Decimal) string {
	switch {
	case risk.Level.Equal(valueobject.RiskLevelCritical):
		return fmt.Sprintf("🚫 BLOCKED: Critical risk detected! Transaction of ₹%s has been blocked. Manual verification required.", amount.String())
	case risk.Level.Equal(valueobject.RiskLevelHigh):
		return fmt.Sprintf("⚠️ ALERT: Suspicious transaction detected! ₹%s transaction pending user confirmation. Risk factors: %s",
			amount.String(), strings.Join(risk.Factors, ", "))
	case risk.Level.Equal(valueobject.RiskLevelMedium):
		return "Transaction completed with alert sent to user."
	default:
		return fmt.Sprintf("Transaction approved: %s of ₹%s", txType, amount.String())
	}
}
