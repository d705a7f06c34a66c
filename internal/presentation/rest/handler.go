package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
)

// OnboardingRunner runs the onboarding pipeline.
type OnboardingRunner interface {
	Execute(ctx context.Context, req dto.OnboardingRequest) (dto.OnboardingResponse, error)
}

// TransactionMonitor scores a transaction.
type TransactionMonitor interface {
	Execute(ctx context.Context, req dto.TransactionRequest) (dto.TransactionResponse, error)
}

// SimSwapAssessor runs a standalone SIM swap assessment.
type SimSwapAssessor interface {
	Execute(ctx context.Context, req dto.SimSwapRequest) (dto.SimSwapResponse, error)
}

// DecisionReader reads stored decision records.
type DecisionReader interface {
	Execute(ctx context.Context, id string) (dto.DecisionResponse, error)
	List(ctx context.Context, req dto.ListDecisionsRequest) ([]dto.DecisionResponse, error)
}

// ControlReader reads a subject's onboarding gate.
type ControlReader interface {
	Execute(ctx context.Context, subjectID string) (dto.ControlStateResponse, error)
}

// SentinelHandler exposes the decision pipelines over HTTP.
type SentinelHandler struct {
	onboarding  OnboardingRunner
	monitor     TransactionMonitor
	simSwap     SimSwapAssessor
	decisions   DecisionReader
	controls    ControlReader
	logger      *slog.Logger
	maxBodySize int64
}

// NewSentinelHandler creates a new HTTP handler.
func NewSentinelHandler(
	onboarding OnboardingRunner,
	monitor TransactionMonitor,
	simSwap SimSwapAssessor,
	decisions DecisionReader,
	controls ControlReader,
	logger *slog.Logger,
) *SentinelHandler {
	return &SentinelHandler{
		onboarding:  onboarding,
		monitor:     monitor,
		simSwap:     simSwap,
		decisions:   decisions,
		controls:    controls,
		logger:      logger,
		maxBodySize: 1 << 20,
	}
}

func (h *SentinelHandler) runOnboarding(w http.ResponseWriter, r *http.Request) {
	var req dto.OnboardingRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.onboarding.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SentinelHandler) monitorTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.monitor.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SentinelHandler) assessSimSwap(w http.ResponseWriter, r *http.Request) {
	var req dto.SimSwapRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.simSwap.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SentinelHandler) getDecision(w http.ResponseWriter, r *http.Request) {
	resp, err := h.decisions.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SentinelHandler) listDecisions(w http.ResponseWriter, r *http.Request) {
	req := dto.ListDecisionsRequest{PhoneNumber: r.URL.Query().Get("phone")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, apperrors.NewValidationError("limit", "must be an integer"))
			return
		}
		req.Limit = limit
	}

	resp, err := h.decisions.List(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"decisions": resp})
}

func (h *SentinelHandler) getControlState(w http.ResponseWriter, r *http.Request) {
	resp, err := h.controls.Execute(r.Context(), chi.URLParam(r, "subject_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SentinelHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
