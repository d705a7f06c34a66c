//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/postgres"
	pgpkg "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/postgres"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/testutil"
)

func setup(t *testing.T) *testutil.PostgresContainer {
	t.Helper()
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pc.Cleanup(t) })
	pc.Migrate(t, postgres.Migrations, postgres.MigrationsDir)
	return pc
}

func TestDecisionRepository_Integration(t *testing.T) {
	pc := setup(t)
	ctx := context.Background()
	repo := postgres.NewDecisionRepository(pc.Pool)

	older := model.ReconstructDecisionRecord(uuid.New(), model.DecisionSimSwap, testutil.TestSubjectID.String(),
		testutil.SwappedNumber, 95, "HIGH_RISK", "HIGH_RISK",
		[]string{"SIM changed within 240 hours"}, []string{"pause_onboarding", "hold_otp"}, testutil.FixedNow.Add(-time.Hour))
	newer := model.ReconstructDecisionRecord(uuid.New(), model.DecisionTransaction, uuid.NewString(),
		testutil.SwappedNumber, 80, "CRITICAL", model.OutcomeBlocked, nil, nil, testutil.FixedNow)
	other := model.ReconstructDecisionRecord(uuid.New(), model.DecisionTransaction, uuid.NewString(),
		testutil.CleanNumber, 0, "LOW", model.OutcomeApproved, nil, nil, testutil.FixedNow)

	for _, r := range []*model.DecisionRecord{older, newer, other} {
		require.NoError(t, repo.Save(ctx, r))
	}

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, older.ID())
		require.NoError(t, err)
		assert.Equal(t, model.DecisionSimSwap, got.Kind())
		assert.Equal(t, 95, got.Score())
		assert.Equal(t, []string{"pause_onboarding", "hold_otp"}, got.Actions())
		assert.True(t, got.CreatedAt().Equal(older.CreatedAt()))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		assert.Error(t, repo.Save(ctx, older))
	})

	t.Run("list newest first", func(t *testing.T) {
		got, err := repo.ListByPhone(ctx, testutil.SwappedNumber, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID(), got[0].ID())
		assert.Equal(t, older.ID(), got[1].ID())
		assert.Empty(t, got[0].Factors())
	})

	t.Run("list honours limit", func(t *testing.T) {
		got, err := repo.ListByPhone(ctx, testutil.SwappedNumber, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestControlStore_Integration(t *testing.T) {
	pc := setup(t)
	ctx := context.Background()
	store := postgres.NewControlStore(pc.Pool)
	subject := testutil.TestSubjectID.String()

	_, err := store.State(ctx, subject)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.PauseOnboarding(ctx, subject, testutil.SwappedNumber))
	require.NoError(t, store.HoldOTP(ctx, subject, testutil.SwappedNumber))

	st, err := store.State(ctx, subject)
	require.NoError(t, err)
	assert.True(t, st.Paused)
	assert.False(t, st.OTPAllowed)
	assert.False(t, st.ClearedToKYC)
	assert.Equal(t, testutil.SwappedNumber, st.PhoneNumber)

	var events int
	require.NoError(t, pc.Pool.QueryRow(ctx,
		`SELECT count(*) FROM onboarding_control_events WHERE subject_id = $1`, subject).Scan(&events))
	assert.Equal(t, 2, events)

	require.NoError(t, store.ClearForKYC(ctx, "other-subject", testutil.CleanNumber))
	cleared, err := store.State(ctx, "other-subject")
	require.NoError(t, err)
	assert.True(t, cleared.ClearedToKYC)
	assert.True(t, cleared.OTPAllowed)
}

func TestMigrations_Rollback(t *testing.T) {
	pc := setup(t)
	ctx := context.Background()

	require.NoError(t, pgpkg.RollbackMigrationsFS(pc.DSN, postgres.Migrations, postgres.MigrationsDir))

	var exists bool
	err := pc.Pool.QueryRow(ctx, `SELECT to_regclass('public.decisions') IS NOT NULL`).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, pgpkg.RunMigrationsFS(pc.DSN, postgres.Migrations, postgres.MigrationsDir))
	require.NoError(t, pgpkg.RunMigrationsFS(pc.DSN, postgres.Migrations, postgres.MigrationsDir), "re-running is a no-op")
}
