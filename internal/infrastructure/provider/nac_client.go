package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface checks.
var (
	_ port.SimSwapProvider   = (*NACClient)(nil)
	_ port.OwnershipProvider = (*NACClient)(nil)
)

const (
	nacProviderName = "network-as-code"

	simSwapCheckPath       = "/passthrough/camara/v1/sim-swap/sim-swap/v0/check"
	numberVerificationPath = "/number-verification/v0/verify"

	// maxErrorBody bounds how much of an error response ends up in a message.
	maxErrorBody = 512
)

// NACConfig configures the Network-as-Code client.
type NACConfig struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// NACClient implements the telecom signal ports against the Nokia
// Network-as-Code CAMARA APIs exposed through RapidAPI.
type NACClient struct {
	baseURL string
	host    string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewNACClient creates a new Network-as-Code API client.
func NewNACClient(cfg NACConfig) *NACClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &NACClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		host:    cfg.Host,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

type simSwapCheckRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	MaxAge      int    `json:"maxAge"`
}

// simSwapCheckResponse accepts both the plain CAMARA check body and the
// variants that also report when the SIM last changed.
type simSwapCheckResponse struct {
	Swapped         *bool   `json:"swapped"`
	SimSwapDate     *string `json:"simSwapDate"`
	LatestSimChange *string `json:"latestSimChange"`
}

type numberVerificationRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type numberVerificationResponse struct {
	DevicePhoneNumberVerified *bool `json:"devicePhoneNumberVerified"`
}

// CheckSimSwap asks the operator whether the SIM changed within maxAgeHours.
func (c *NACClient) CheckSimSwap(ctx context.Context, phoneNumber string, maxAgeHours int) (port.SimSwapResult, error) {
	var out simSwapCheckResponse
	if err := c.post(ctx, simSwapCheckPath, simSwapCheckRequest{PhoneNumber: phoneNumber, MaxAge: maxAgeHours}, &out); err != nil {
		return port.SimSwapResult{}, err
	}
	if out.Swapped == nil {
		return port.SimSwapResult{}, apperrors.NewProviderError(apperrors.ProviderBadData, nacProviderName,
			"sim swap response has no swapped field", nil)
	}

	result := port.SimSwapResult{Swapped: *out.Swapped}
	raw := out.SimSwapDate
	if raw == nil {
		raw = out.LatestSimChange
	}
	if raw != nil && *raw != "" {
		d, err := time.Parse(time.RFC3339, *raw)
		if err != nil {
			return port.SimSwapResult{}, apperrors.NewProviderError(apperrors.ProviderBadData, nacProviderName,
				"sim swap date is not RFC 3339", err)
		}
		result.SwapDate = &d
	}
	return result, nil
}

// VerifyOwnership asks the operator whether the number belongs to the
// requesting device.
func (c *NACClient) VerifyOwnership(ctx context.Context, phoneNumber string) (port.OwnershipResult, error) {
	var out numberVerificationResponse
	if err := c.post(ctx, numberVerificationPath, numberVerificationRequest{PhoneNumber: phoneNumber}, &out); err != nil {
		return port.OwnershipResult{}, err
	}
	if out.DevicePhoneNumberVerified == nil {
		return port.OwnershipResult{}, apperrors.NewProviderError(apperrors.ProviderBadData, nacProviderName,
			"verification response has no devicePhoneNumberVerified field", nil)
	}
	return port.OwnershipResult{Verified: *out.DevicePhoneNumberVerified}, nil
}

func (c *NACClient) post(ctx context.Context, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.NewProviderError(apperrors.ProviderRateLimited, nacProviderName, "rate limiter", err)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return apperrors.NewProviderError(apperrors.ProviderInternal, nacProviderName, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return apperrors.NewProviderError(apperrors.ProviderInternal, nacProviderName, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.NewProviderError(transportCategory(err), nacProviderName, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewProviderError(apperrors.ProviderOutage, nacProviderName, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewProviderError(statusCategory(resp.StatusCode), nacProviderName,
			fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(body)), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewProviderError(apperrors.ProviderBadData, nacProviderName, "failed to parse response", err)
	}
	return nil
}

// statusCategory maps an HTTP status onto a provider error category.
func statusCategory(status int) apperrors.ProviderCategory {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.ProviderAuthentication
	case status == http.StatusTooManyRequests:
		return apperrors.ProviderRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return apperrors.ProviderTimeout
	case status >= 500:
		return apperrors.ProviderOutage
	case status >= 400:
		return apperrors.ProviderBadData
	default:
		return apperrors.ProviderInternal
	}
}

func transportCategory(err error) apperrors.ProviderCategory {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ProviderTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.ProviderTimeout
	}
	return apperrors.ProviderOutage
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
