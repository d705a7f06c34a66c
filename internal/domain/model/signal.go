package model

import (
	"fmt"
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
)

// SignalStatus is the outcome classification of a telecom signal.
type SignalStatus string

const (
	StatusSafe     SignalStatus = "SAFE"
	StatusAlert    SignalStatus = "ALERT"
	StatusVerified SignalStatus = "VERIFIED"
	StatusFailed   SignalStatus = "FAILED"
	StatusError    SignalStatus = "ERROR"
)

// RecommendRetry is attached to every signal whose provider call failed.
const RecommendRetry = "Retry or escalate to manual verification."

// SimSwapSignal is the immutable result of one SIM swap check.
type SimSwapSignal struct {
	phoneNumber      string
	status           SignalStatus
	swapped          bool
	swapDate         *time.Time
	hoursSinceChange *float64
	maxAgeHours      int
	message          string
	recommendation   string
	err              error
}

// NewSimSwapSignal builds a signal from a successful provider response.
// hoursSinceChange is derived from swapDate relative to observedAt and never negative.
func NewSimSwapSignal(phoneNumber string, maxAgeHours int, swapped bool, swapDate *time.Time, observedAt time.Time) SimSwapSignal {
	s := SimSwapSignal{
		phoneNumber: phoneNumber,
		swapped:     swapped,
		maxAgeHours: maxAgeHours,
	}

	if swapDate != nil {
		d := swapDate.UTC()
		s.swapDate = &d
		hours := observedAt.Sub(d).Hours()
		if hours < 0 {
			hours = 0
		}
		s.hoursSinceChange = &hours
	}

	if swapped {
		when := "a recent date"
		if s.swapDate != nil {
			when = s.swapDate.Format(time.RFC3339)
		}
		s.status = StatusAlert
		s.message = fmt.Sprintf("SIM swap detected for %s on %s. Immediate action required.", phoneNumber, when)
		s.recommendation = "Request additional verification before proceeding."
	} else {
		s.status = StatusSafe
		s.message = fmt.Sprintf("No SIM swap detected for %s in the last %d hours.", phoneNumber, maxAgeHours)
		s.recommendation = "User can proceed with normal flow."
	}

	return s
}

// NewSimSwapErrorSignal builds the signal reported when the provider call failed.
func NewSimSwapErrorSignal(phoneNumber string, maxAgeHours int, err error) SimSwapSignal {
	return SimSwapSignal{
		phoneNumber:    phoneNumber,
		status:         StatusError,
		maxAgeHours:    maxAgeHours,
		message:        fmt.Sprintf("Failed to check SIM swap status: %v", err),
		recommendation: RecommendRetry,
		err:            err,
	}
}

func (s SimSwapSignal) PhoneNumber() string    { return s.phoneNumber }
func (s SimSwapSignal) Status() SignalStatus   { return s.status }
func (s SimSwapSignal) Swapped() bool          { return s.swapped }
func (s SimSwapSignal) MaxAgeHours() int       { return s.maxAgeHours }
func (s SimSwapSignal) Message() string        { return s.message }
func (s SimSwapSignal) Recommendation() string { return s.recommendation }
func (s SimSwapSignal) Err() error             { return s.err }

// SwapDate returns the reported swap date, if any.
func (s SimSwapSignal) SwapDate() (time.Time, bool) {
	if s.swapDate == nil {
		return time.Time{}, false
	}
	return *s.swapDate, true
}

// HoursSinceChange returns the hours elapsed since the reported swap, if known.
func (s SimSwapSignal) HoursSinceChange() (float64, bool) {
	if s.hoursSinceChange == nil {
		return 0, false
	}
	return *s.hoursSinceChange, true
}

// Failed reports whether the provider call behind this signal failed.
func (s SimSwapSignal) Failed() bool {
	return s.status == StatusError
}

// TransactionStatus maps the signal onto the transaction policy input.
func (s SimSwapSignal) TransactionStatus() valueobject.SimSwapStatus {
	switch s.status {
	case StatusAlert:
		return valueobject.SimSwapSwapped
	case StatusSafe:
		return valueobject.SimSwapSafe
	default:
		return valueobject.SimSwapUnknown
	}
}

// OwnershipSignal is the immutable result of one number verification.
type OwnershipSignal struct {
	phoneNumber    string
	status         SignalStatus
	verified       bool
	message        string
	recommendation string
	err            error
}

// NewOwnershipSignal builds a signal from a successful verification response.
func NewOwnershipSignal(phoneNumber string, verified bool) OwnershipSignal {
	if verified {
		return OwnershipSignal{
			phoneNumber:    phoneNumber,
			status:         StatusVerified,
			verified:       true,
			message:        fmt.Sprintf("Phone number %s successfully verified against device.", phoneNumber),
			recommendation: "Proceed with onboarding or transaction.",
		}
	}
	return OwnershipSignal{
		phoneNumber:    phoneNumber,
		status:         StatusFailed,
		message:        fmt.Sprintf("Phone number %s does NOT match the device. Possible spoofing detected.", phoneNumber),
		recommendation: "Block transaction and require additional authentication.",
	}
}

// NewOwnershipErrorSignal builds the signal reported when verification failed
// to complete. An errored verification counts as unverified.
func NewOwnershipErrorSignal(phoneNumber string, err error) OwnershipSignal {
	return OwnershipSignal{
		phoneNumber:    phoneNumber,
		status:         StatusError,
		message:        fmt.Sprintf("Failed to verify phone number: %v", err),
		recommendation: RecommendRetry,
		err:            err,
	}
}

func (s OwnershipSignal) PhoneNumber() string    { return s.phoneNumber }
func (s OwnershipSignal) Status() SignalStatus   { return s.status }
func (s OwnershipSignal) Verified() bool         { return s.verified }
func (s OwnershipSignal) Message() string        { return s.message }
func (s OwnershipSignal) Recommendation() string { return s.recommendation }
func (s OwnershipSignal) Err() error             { return s.err }

// Failed reports whether the provider call behind this signal failed.
func (s OwnershipSignal) Failed() bool {
	return s.status == StatusError
}
