package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the input DTO for the MonitorTransaction use case.
type TransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	PhoneNumber     string          `json:"phone_number"`
	TransactionType string          `json:"transaction_type"`
	MerchantName    string          `json:"merchant_name,omitempty"`
}

// TransactionResponse is the decision returned for a monitored transaction.
type TransactionResponse struct {
	DecisionID               *uuid.UUID              `json:"decision_id,omitempty"`
	RiskLevel                string                  `json:"risk_level"`
	Action                   string                  `json:"action"`
	Message                  string                  `json:"message"`
	Factors                  []string                `json:"factors"`
	SimSwap                  SimSwapSignalResponse   `json:"sim_swap"`
	Ownership                OwnershipSignalResponse `json:"ownership"`
	RiskScore                int                     `json:"risk_score"`
	TransactionID            uuid.UUID               `json:"transaction_id"`
	Approved                 bool                    `json:"approved"`
	RequiresUserConfirmation bool                    `json:"requires_user_confirmation"`
	Blocked                  bool                    `json:"blocked"`
}
