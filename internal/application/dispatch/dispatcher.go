// Package dispatch enacts the remediation actions recommended by a risk
// assessment. Every action runs concurrently and independently; a failed
// action is reported in its own outcome and never stops its siblings.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/metrics"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/join"
)

// DefaultAgentID is the agent routed every manual review notification.
const DefaultAgentID = "nearest-agent-id"

var errNoExecutor = errors.New("no executor registered")

// Request identifies the subject an assessment was made for.
type Request struct {
	SubjectID   string
	PhoneNumber string
	Assessment  model.RiskAssessment
}

// Outcome is the result of one action. Err is an *apperrors.ActionDispatchError.
type Outcome struct {
	Err    error
	Action valueobject.Action
}

// OK reports whether the action completed.
func (o Outcome) OK() bool { return o.Err == nil }

// Report collects one outcome per dispatched action, in request order.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the outcomes whose action did not complete.
func (r Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// AllSucceeded reports whether every action completed.
func (r Report) AllSucceeded() bool {
	return len(r.Failed()) == 0
}

type executor func(ctx context.Context, req Request) error

// Dispatcher maps each action to its executor.
type Dispatcher struct {
	executors map[valueobject.Action]executor
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewDispatcher wires the action executors onto their collaborators.
func NewDispatcher(
	control port.OnboardingControl,
	queue port.ReviewQueue,
	users port.UserNotifier,
	agents port.AgentNotifier,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	d := &Dispatcher{
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}

	d.executors = map[valueobject.Action]executor{
		valueobject.ActionPauseOnboarding: func(ctx context.Context, req Request) error {
			return control.PauseOnboarding(ctx, req.SubjectID, req.PhoneNumber)
		},
		valueobject.ActionHoldOTP: func(ctx context.Context, req Request) error {
			return control.HoldOTP(ctx, req.SubjectID, req.PhoneNumber)
		},
		valueobject.ActionEnqueueManualReview: func(ctx context.Context, req Request) error {
			return queue.Enqueue(ctx, port.ReviewItem{
				SubjectID:   req.SubjectID,
				PhoneNumber: req.PhoneNumber,
				Result:      req.Assessment,
				EnqueuedAt:  d.now().UTC(),
			})
		},
		valueobject.ActionNotifyUser: func(ctx context.Context, req Request) error {
			return users.NotifyUser(ctx, req.PhoneNumber, UserAlertMessage(req.PhoneNumber))
		},
		valueobject.ActionNotifyAgent: func(ctx context.Context, req Request) error {
			return agents.NotifyAgent(ctx, DefaultAgentID, AgentSummary(req.PhoneNumber))
		},
		valueobject.ActionProceedToKYC: func(ctx context.Context, req Request) error {
			return control.ClearForKYC(ctx, req.SubjectID, req.PhoneNumber)
		},
	}

	return d
}

// UserAlertMessage is the SMS sent to a subscriber whose number looks compromised.
func UserAlertMessage(phoneNumber string) string {
	return fmt.Sprintf("We detected unusual activity on your number %s. Please contact support or wait for agent verification.", phoneNumber)
}

// AgentSummary is the note sent to the field agent.
func AgentSummary(phoneNumber string) string {
	return fmt.Sprintf("Manual review required for %s", phoneNumber)
}

// Dispatch runs the executors for actions concurrently and waits for all of
// them. Repeated actions run once.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, actions []valueobject.Action) Report {
	actions = valueobject.DedupeActions(actions)
	if len(actions) == 0 {
		return Report{}
	}

	tasks := make([]func(context.Context) error, len(actions))
	for i, action := range actions {
		exec, ok := d.executors[action]
		if !ok {
			tasks[i] = func(context.Context) error {
				return errNoExecutor
			}
			continue
		}
		tasks[i] = func(ctx context.Context) error {
			return exec(ctx, req)
		}
	}

	errs := join.Run(ctx, tasks...)

	report := Report{Outcomes: make([]Outcome, len(actions))}
	for i, action := range actions {
		outcome := Outcome{Action: action}
		if errs[i] != nil {
			outcome.Err = &apperrors.ActionDispatchError{Action: string(action), Underlying: errs[i]}
			d.logger.ErrorContext(ctx, "action dispatch failed",
				"action", action,
				"subject_id", req.SubjectID,
				"tier", req.Assessment.Tier.String(),
				"error", errs[i],
			)
		}
		d.metrics.IncrementAction(string(action), outcome.OK())
		report.Outcomes[i] = outcome
	}

	d.logger.InfoContext(ctx, "actions dispatched",
		"subject_id", req.SubjectID,
		"actions", len(actions),
		"failed", len(report.Failed()),
	)

	return report
}
