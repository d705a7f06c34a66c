package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/usecase"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
)

func seedDecision(t *testing.T, repo *mockDecisionRepository, phone string) *model.DecisionRecord {
	t.Helper()
	r := model.ReconstructDecisionRecord(uuid.New(), model.DecisionTransaction, uuid.NewString(), phone,
		80, "CRITICAL", model.OutcomeBlocked, []string{"Recent SIM swap detected"}, nil, fixedNow)
	require.NoError(t, repo.Save(context.Background(), r))
	return r
}

func TestGetDecision_Execute(t *testing.T) {
	repo := newMockDecisionRepository()
	r := seedDecision(t, repo, "+99999991000")

	resp, err := usecase.NewGetDecision(repo).Execute(context.Background(), r.ID().String())
	require.NoError(t, err)

	assert.Equal(t, r.ID(), resp.ID)
	assert.Equal(t, "transaction", resp.Kind)
	assert.Equal(t, 80, resp.Score)
	assert.Equal(t, "blocked", resp.Outcome)
	assert.Equal(t, []string{}, resp.Actions)
	assert.Equal(t, fixedNow, resp.CreatedAt)
}

func TestGetDecision_InvalidID(t *testing.T) {
	_, err := usecase.NewGetDecision(newMockDecisionRepository()).Execute(context.Background(), "not-a-uuid")
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetDecision_NotFound(t *testing.T) {
	_, err := usecase.NewGetDecision(newMockDecisionRepository()).Execute(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetDecision_List(t *testing.T) {
	repo := newMockDecisionRepository()
	seedDecision(t, repo, "+99999991000")
	seedDecision(t, repo, "+99999991000")
	seedDecision(t, repo, "+99999991001")

	out, err := usecase.NewGetDecision(repo).List(context.Background(), dto.ListDecisionsRequest{PhoneNumber: "+99999991000"})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 20, repo.lastLimit)
}

func TestGetDecision_ListLimits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 20},
		{"explicit", 5, 5},
		{"capped", 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockDecisionRepository()
			_, err := usecase.NewGetDecision(repo).List(context.Background(), dto.ListDecisionsRequest{
				PhoneNumber: "+99999991000",
				Limit:       tt.limit,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, repo.lastLimit)
		})
	}
}

func TestGetDecision_ListErrors(t *testing.T) {
	repo := newMockDecisionRepository()
	uc := usecase.NewGetDecision(repo)

	_, err := uc.List(context.Background(), dto.ListDecisionsRequest{PhoneNumber: "x"})
	assert.True(t, apperrors.IsValidation(err))

	repo.listErr = errors.New("db down")
	_, err = uc.List(context.Background(), dto.ListDecisionsRequest{PhoneNumber: "+99999991000"})
	require.Error(t, err)
	assert.False(t, apperrors.IsValidation(err))
}

func TestDecisionRecorder_PublishFailureKeepsEvents(t *testing.T) {
	repo := newMockDecisionRepository()
	pub := &mockEventPublisher{publishErr: errors.New("broker unavailable")}
	txn, err := model.NewTransactionEvent("+99999991001", decimal.NewFromInt(10), "payment", "", fixedNow)
	require.NoError(t, err)
	record := model.NewTransactionDecision(txn, model.TransactionRisk{}, time.Now())

	id := newRecorder(repo, pub).Record(context.Background(), record)

	require.NotNil(t, id)
	assert.Equal(t, record.ID(), *id)
	assert.Len(t, record.DomainEvents(), 1)
}
