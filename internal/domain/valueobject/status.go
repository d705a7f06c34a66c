package valueobject

// OnboardingStatus is the lifecycle state of an onboarding session.
type OnboardingStatus string

const (
	OnboardingPending    OnboardingStatus = "pending"
	OnboardingInProgress OnboardingStatus = "in_progress"
	OnboardingApproved   OnboardingStatus = "approved"
	OnboardingRejected   OnboardingStatus = "rejected"
)

// IsTerminal reports whether no further stage may change the status.
func (s OnboardingStatus) IsTerminal() bool {
	return s == OnboardingApproved || s == OnboardingRejected
}

// SimSwapStatus is the SIM swap state fed to the transaction policy.
type SimSwapStatus string

const (
	SimSwapSafe    SimSwapStatus = "safe"
	SimSwapSwapped SimSwapStatus = "swapped"
	SimSwapUnknown SimSwapStatus = "unknown"
)
