package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
)

// Compile-time assertion that SentinelHandler implements SentinelServiceServer.
var _ SentinelServiceServer = (*SentinelHandler)(nil)

// Use cases served by the handler.
type (
	OnboardingRunner interface {
		Execute(ctx context.Context, req dto.OnboardingRequest) (dto.OnboardingResponse, error)
	}
	TransactionMonitor interface {
		Execute(ctx context.Context, req dto.TransactionRequest) (dto.TransactionResponse, error)
	}
	SimSwapAssessor interface {
		Execute(ctx context.Context, req dto.SimSwapRequest) (dto.SimSwapResponse, error)
	}
	DecisionReader interface {
		Execute(ctx context.Context, id string) (dto.DecisionResponse, error)
		List(ctx context.Context, req dto.ListDecisionsRequest) ([]dto.DecisionResponse, error)
	}
	ControlReader interface {
		Execute(ctx context.Context, subjectID string) (dto.ControlStateResponse, error)
	}
)

// Proto-aligned request/response message types.

// RunOnboardingRequest represents the proto RunOnboardingRequest message.
type RunOnboardingRequest struct {
	PhoneNumber string `json:"phone_number"`
	UserName    string `json:"user_name,omitempty"`
	Language    string `json:"language,omitempty"`
}

// RunOnboardingResponse represents the proto RunOnboardingResponse message.
type RunOnboardingResponse struct {
	Result dto.OnboardingResponse `json:"result"`
}

// MonitorTransactionRequest represents the proto MonitorTransactionRequest
// message. Amount is a decimal string.
type MonitorTransactionRequest struct {
	PhoneNumber     string `json:"phone_number"`
	Amount          string `json:"amount"`
	TransactionType string `json:"transaction_type"`
	MerchantName    string `json:"merchant_name,omitempty"`
}

// MonitorTransactionResponse represents the proto MonitorTransactionResponse message.
type MonitorTransactionResponse struct {
	Result dto.TransactionResponse `json:"result"`
}

// AssessSimSwapRequest represents the proto AssessSimSwapRequest message.
type AssessSimSwapRequest struct {
	PhoneNumber string `json:"phone_number"`
	UserID      string `json:"user_id,omitempty"`
	MaxAgeHours int32  `json:"max_age_hours,omitempty"`
}

// AssessSimSwapResponse represents the proto AssessSimSwapResponse message.
type AssessSimSwapResponse struct {
	Result dto.SimSwapResponse `json:"result"`
}

// GetDecisionRequest represents the proto GetDecisionRequest message.
type GetDecisionRequest struct {
	ID string `json:"id"`
}

// GetDecisionResponse represents the proto GetDecisionResponse message.
type GetDecisionResponse struct {
	Decision dto.DecisionResponse `json:"decision"`
}

// ListDecisionsRequest represents the proto ListDecisionsRequest message.
type ListDecisionsRequest struct {
	PhoneNumber string `json:"phone_number"`
	Limit       int32  `json:"limit,omitempty"`
}

// ListDecisionsResponse represents the proto ListDecisionsResponse message.
type ListDecisionsResponse struct {
	Decisions []dto.DecisionResponse `json:"decisions"`
}

// GetControlStateRequest represents the proto GetControlStateRequest message.
type GetControlStateRequest struct {
	SubjectID string `json:"subject_id"`
}

// GetControlStateResponse represents the proto GetControlStateResponse message.
type GetControlStateResponse struct {
	State dto.ControlStateResponse `json:"state"`
}

// SentinelHandler implements the gRPC SentinelServiceServer interface.
type SentinelHandler struct {
	UnimplementedSentinelServiceServer
	onboarding OnboardingRunner
	monitor    TransactionMonitor
	simSwap    SimSwapAssessor
	decisions  DecisionReader
	controls   ControlReader
	logger     *slog.Logger
}

// NewSentinelHandler creates a new gRPC handler.
func NewSentinelHandler(
	onboarding OnboardingRunner,
	monitor TransactionMonitor,
	simSwap SimSwapAssessor,
	decisions DecisionReader,
	controls ControlReader,
	logger *slog.Logger,
) *SentinelHandler {
	return &SentinelHandler{
		onboarding: onboarding,
		monitor:    monitor,
		simSwap:    simSwap,
		decisions:  decisions,
		controls:   controls,
		logger:     logger,
	}
}

// RunOnboarding runs the onboarding pipeline for a subscriber.
func (h *SentinelHandler) RunOnboarding(ctx context.Context, req *RunOnboardingRequest) (*RunOnboardingResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.onboarding.Execute(ctx, dto.OnboardingRequest{
		PhoneNumber: req.PhoneNumber,
		UserName:    req.UserName,
		Language:    req.Language,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "RunOnboarding", err)
	}
	return &RunOnboardingResponse{Result: result}, nil
}

// MonitorTransaction scores a transaction.
func (h *SentinelHandler) MonitorTransaction(ctx context.Context, req *MonitorTransactionRequest) (*MonitorTransactionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	result, err := h.monitor.Execute(ctx, dto.TransactionRequest{
		PhoneNumber:     req.PhoneNumber,
		Amount:          amount,
		TransactionType: req.TransactionType,
		MerchantName:    req.MerchantName,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "MonitorTransaction", err)
	}
	return &MonitorTransactionResponse{Result: result}, nil
}

// AssessSimSwap runs a standalone SIM swap assessment.
func (h *SentinelHandler) AssessSimSwap(ctx context.Context, req *AssessSimSwapRequest) (*AssessSimSwapResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.simSwap.Execute(ctx, dto.SimSwapRequest{
		PhoneNumber: req.PhoneNumber,
		UserID:      req.UserID,
		MaxAgeHours: int(req.MaxAgeHours),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "AssessSimSwap", err)
	}
	return &AssessSimSwapResponse{Result: result}, nil
}

// GetDecision returns one stored decision.
func (h *SentinelHandler) GetDecision(ctx context.Context, req *GetDecisionRequest) (*GetDecisionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	decision, err := h.decisions.Execute(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(ctx, "GetDecision", err)
	}
	return &GetDecisionResponse{Decision: decision}, nil
}

// ListDecisions returns the most recent decisions for a phone number.
func (h *SentinelHandler) ListDecisions(ctx context.Context, req *ListDecisionsRequest) (*ListDecisionsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	decisions, err := h.decisions.List(ctx, dto.ListDecisionsRequest{
		PhoneNumber: req.PhoneNumber,
		Limit:       int(req.Limit),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "ListDecisions", err)
	}
	return &ListDecisionsResponse{Decisions: decisions}, nil
}

// GetControlState returns the onboarding gate for a subject.
func (h *SentinelHandler) GetControlState(ctx context.Context, req *GetControlStateRequest) (*GetControlStateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	state, err := h.controls.Execute(ctx, req.SubjectID)
	if err != nil {
		return nil, h.toStatus(ctx, "GetControlState", err)
	}
	return &GetControlStateResponse{State: state}, nil
}

// toStatus maps application errors onto gRPC status codes.
func (h *SentinelHandler) toStatus(ctx context.Context, method string, err error) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "rpc failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}
