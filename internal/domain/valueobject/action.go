package valueobject

import "fmt"

// Action identifies a remediation step the dispatcher can enact.
type Action string

const (
	ActionPauseOnboarding     Action = "pause_onboarding"
	ActionHoldOTP             Action = "hold_otp"
	ActionEnqueueManualReview Action = "enqueue_manual_review"
	ActionNotifyUser          Action = "notify_user"
	ActionNotifyAgent         Action = "notify_agent"
	ActionProceedToKYC        Action = "proceed_to_kyc"
)

// AllActions lists every known action.
func AllActions() []Action {
	return []Action{
		ActionPauseOnboarding,
		ActionHoldOTP,
		ActionEnqueueManualReview,
		ActionNotifyUser,
		ActionNotifyAgent,
		ActionProceedToKYC,
	}
}

// ParseAction validates an action identifier.
func ParseAction(s string) (Action, error) {
	for _, a := range AllActions() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action: %q", s)
}

func (a Action) String() string { return string(a) }

// DedupeActions removes repeated actions, keeping the first occurrence of each.
func DedupeActions(actions []Action) []Action {
	if len(actions) == 0 {
		return nil
	}
	seen := make(map[Action]struct{}, len(actions))
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
