package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
)

// Compile-time interface check.
var _ port.OnboardingControl = (*ControlStore)(nil)

// ControlStore keeps the onboarding gate per subject in a map.
type ControlStore struct {
	mu     sync.Mutex
	states map[string]port.ControlState
	now    func() time.Time
}

// NewControlStore creates an empty in-memory control store.
func NewControlStore() *ControlStore {
	return &ControlStore{states: make(map[string]port.ControlState), now: time.Now}
}

// PauseOnboarding marks the subject's onboarding as paused.
func (s *ControlStore) PauseOnboarding(_ context.Context, subjectID, phoneNumber string) error {
	s.update(subjectID, phoneNumber, func(st *port.ControlState) { st.Paused = true })
	return nil
}

// HoldOTP disallows OTP issuance for the subject.
func (s *ControlStore) HoldOTP(_ context.Context, subjectID, phoneNumber string) error {
	s.update(subjectID, phoneNumber, func(st *port.ControlState) { st.OTPAllowed = false })
	return nil
}

// ClearForKYC records the subject as handed over to KYC.
func (s *ControlStore) ClearForKYC(_ context.Context, subjectID, phoneNumber string) error {
	s.update(subjectID, phoneNumber, func(st *port.ControlState) { st.ClearedToKYC = true })
	return nil
}

// State returns the gate for the subject, or apperrors.ErrNotFound.
func (s *ControlStore) State(_ context.Context, subjectID string) (port.ControlState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[subjectID]
	if !ok {
		return port.ControlState{}, apperrors.ErrNotFound
	}
	return st, nil
}

func (s *ControlStore) update(subjectID, phoneNumber string, fn func(*port.ControlState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[subjectID]
	if !ok {
		st = port.ControlState{SubjectID: subjectID, OTPAllowed: true}
	}
	st.PhoneNumber = phoneNumber
	st.UpdatedAt = s.now().UTC()
	fn(&st)
	s.states[subjectID] = st
}
