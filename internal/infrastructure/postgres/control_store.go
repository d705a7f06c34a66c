package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
	pgpkg "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/postgres"
)

// Compile-time interface check.
var _ port.OnboardingControl = (*ControlStore)(nil)

// ControlStore keeps the onboarding gate per subject and an audit trail of
// every change.
type ControlStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewControlStore creates a PostgreSQL-backed onboarding control store.
func NewControlStore(pool *pgxpool.Pool) *ControlStore {
	return &ControlStore{pool: pool, now: time.Now}
}

// PauseOnboarding marks the subject's onboarding as paused.
func (s *ControlStore) PauseOnboarding(ctx context.Context, subjectID, phoneNumber string) error {
	return s.apply(ctx, valueobject.ActionPauseOnboarding, subjectID, phoneNumber, "paused = TRUE")
}

// HoldOTP disallows OTP issuance for the subject.
func (s *ControlStore) HoldOTP(ctx context.Context, subjectID, phoneNumber string) error {
	return s.apply(ctx, valueobject.ActionHoldOTP, subjectID, phoneNumber, "otp_allowed = FALSE")
}

// ClearForKYC records the subject as handed over to KYC.
func (s *ControlStore) ClearForKYC(ctx context.Context, subjectID, phoneNumber string) error {
	return s.apply(ctx, valueobject.ActionProceedToKYC, subjectID, phoneNumber, "cleared_to_kyc = TRUE")
}

// State returns the gate for the subject, or apperrors.ErrNotFound.
func (s *ControlStore) State(ctx context.Context, subjectID string) (port.ControlState, error) {
	var st port.ControlState
	err := s.pool.QueryRow(ctx, `
		SELECT subject_id, phone_number, paused, otp_allowed, cleared_to_kyc, updated_at
		FROM onboarding_controls
		WHERE subject_id = $1
	`, subjectID).Scan(&st.SubjectID, &st.PhoneNumber, &st.Paused, &st.OTPAllowed, &st.ClearedToKYC, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return port.ControlState{}, apperrors.ErrNotFound
	}
	if err != nil {
		return port.ControlState{}, fmt.Errorf("failed to load onboarding control: %w", err)
	}
	st.UpdatedAt = st.UpdatedAt.UTC()
	return st, nil
}

// apply upserts the gate with the given assignment and appends an audit row
// in one transaction. set is one of the fixed assignments above.
func (s *ControlStore) apply(ctx context.Context, action valueobject.Action, subjectID, phoneNumber, set string) error {
	now := s.now().UTC()
	upsert := `
		INSERT INTO onboarding_controls (subject_id, phone_number, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject_id) DO UPDATE SET
			phone_number = EXCLUDED.phone_number,
			updated_at = EXCLUDED.updated_at
	`

	return pgpkg.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsert, subjectID, phoneNumber, now); err != nil {
			return fmt.Errorf("failed to upsert onboarding control: %w", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE onboarding_controls SET `+set+` WHERE subject_id = $1`, subjectID); err != nil {
			return fmt.Errorf("failed to %s: %w", action, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO onboarding_control_events (subject_id, action, occurred_at) VALUES ($1, $2, $3)`,
			subjectID, string(action), now,
		); err != nil {
			return fmt.Errorf("failed to record control event: %w", err)
		}
		return nil
	})
}
