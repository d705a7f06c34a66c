package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface checks.
var (
	_ port.UserNotifier  = (*WebhookNotifier)(nil)
	_ port.AgentNotifier = (*WebhookNotifier)(nil)
)

var (
	errSMSDisabled   = errors.New("sms webhook not configured")
	errAgentDisabled = errors.New("agent webhook not configured")
)

type smsRequest struct {
	PhoneNumber string    `json:"phone_number"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sent_at"`
}

type agentRequest struct {
	AgentID string    `json:"agent_id"`
	Summary string    `json:"summary"`
	SentAt  time.Time `json:"sent_at"`
}

// WebhookNotifier delivers SMS and agent notifications by POSTing JSON to
// configured webhooks. An empty URL disables that channel.
type WebhookNotifier struct {
	smsURL   string
	agentURL string
	client   *http.Client
	now      func() time.Time
}

// NewWebhookNotifier creates a notifier posting to the given webhook URLs.
func NewWebhookNotifier(smsURL, agentURL string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		smsURL:   smsURL,
		agentURL: agentURL,
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// NotifyUser sends an SMS through the SMS webhook.
func (n *WebhookNotifier) NotifyUser(ctx context.Context, phoneNumber, message string) error {
	if n.smsURL == "" {
		return errSMSDisabled
	}
	return n.post(ctx, n.smsURL, smsRequest{
		PhoneNumber: phoneNumber,
		Message:     message,
		SentAt:      n.now().UTC(),
	})
}

// NotifyAgent alerts a field agent through the agent webhook.
func (n *WebhookNotifier) NotifyAgent(ctx context.Context, agentID, summary string) error {
	if n.agentURL == "" {
		return errAgentDisabled
	}
	return n.post(ctx, n.agentURL, agentRequest{
		AgentID: agentID,
		Summary: summary,
		SentAt:  n.now().UTC(),
	})
}

func (n *WebhookNotifier) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification webhook returned status %d", resp.StatusCode)
	}
	return nil
}
