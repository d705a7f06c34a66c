package port

import (
	"context"
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
)

// ControlState is the onboarding gate kept for a subject.
type ControlState struct {
	UpdatedAt    time.Time
	SubjectID    string
	PhoneNumber  string
	Paused       bool
	OTPAllowed   bool
	ClearedToKYC bool
}

// OnboardingControl gates further onboarding steps for a subject.
type OnboardingControl interface {
	// PauseOnboarding stops the subject's onboarding until an operator resumes it.
	PauseOnboarding(ctx context.Context, subjectID, phoneNumber string) error

	// HoldOTP stops one-time-password issuance for the subject.
	HoldOTP(ctx context.Context, subjectID, phoneNumber string) error

	// ClearForKYC hands the subject to the KYC flow.
	ClearForKYC(ctx context.Context, subjectID, phoneNumber string) error

	// State returns the current gate state for the subject.
	State(ctx context.Context, subjectID string) (ControlState, error)
}

// ReviewItem is the payload placed on the manual review queue.
type ReviewItem struct {
	EnqueuedAt  time.Time            `json:"enqueued_at"`
	SubjectID   string               `json:"subject_id"`
	PhoneNumber string               `json:"phoneNumber"`
	Result      model.RiskAssessment `json:"result"`
}

// ReviewQueue accepts subjects for manual review.
type ReviewQueue interface {
	Enqueue(ctx context.Context, item ReviewItem) error
}

// UserNotifier sends an SMS to the subscriber.
type UserNotifier interface {
	NotifyUser(ctx context.Context, phoneNumber, message string) error
}

// AgentNotifier alerts a field agent.
type AgentNotifier interface {
	NotifyAgent(ctx context.Context, agentID, summary string) error
}
