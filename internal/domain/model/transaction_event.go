package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

// TransactionEvent is a single transaction submitted for monitoring.
type TransactionEvent struct {
	ID           uuid.UUID
	PhoneNumber  valueobject.PhoneNumber
	Amount       decimal.Decimal
	Type         string
	MerchantName string
	ReceivedAt   time.Time
}

// NewTransactionEvent validates the request fields.
func NewTransactionEvent(phoneNumber string, amount decimal.Decimal, txType, merchant string, now time.Time) (TransactionEvent, error) {
	phone, err := valueobject.NewPhoneNumber(phoneNumber)
	if err != nil {
		return TransactionEvent{}, apperrors.NewValidationError("phone_number", err.Error())
	}
	if amount.IsNegative() {
		return TransactionEvent{}, apperrors.NewValidationError("amount", "must not be negative")
	}
	txType = strings.TrimSpace(txType)
	if txType == "" {
		return TransactionEvent{}, apperrors.NewValidationError("transaction_type", "is required")
	}

	return TransactionEvent{
		ID:           uuid.New(),
		PhoneNumber:  phone,
		Amount:       amount,
		Type:         txType,
		MerchantName: strings.TrimSpace(merchant),
		ReceivedAt:   now.UTC(),
	}, nil
}
