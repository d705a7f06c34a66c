package join_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/join"
)

func TestAll_KeepsOrderAndErrors(t *testing.T) {
	boom := errors.New("boom")

	results := join.All(context.Background(),
		func(context.Context) (int, error) {
			time.Sleep(20 * time.Millisecond)
			return 1, nil
		},
		func(context.Context) (int, error) { return 0, boom },
		func(context.Context) (int, error) { return 3, nil },
	)

	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0].Value)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 3, results[2].Value)
}

func TestAll_FailureDoesNotCancelSiblings(t *testing.T) {
	var finished atomic.Bool

	results := join.All(context.Background(),
		func(context.Context) (string, error) { return "", errors.New("fast failure") },
		func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(30 * time.Millisecond):
				finished.Store(true)
				return "slow", nil
			}
		},
	)

	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "slow", results[1].Value)
	assert.True(t, finished.Load())
}

func TestAll_RecoversPanics(t *testing.T) {
	results := join.All(context.Background(),
		func(context.Context) (int, error) { panic("exploded") },
		func(context.Context) (int, error) { return 7, nil },
	)

	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "exploded")
	assert.Equal(t, 7, results[1].Value)
}

func TestAll_Empty(t *testing.T) {
	assert.Empty(t, join.All[int](context.Background()))
}

func TestRun(t *testing.T) {
	var calls atomic.Int32
	errs := join.Run(context.Background(),
		func(context.Context) error { calls.Add(1); return nil },
		func(context.Context) error { calls.Add(1); return errors.New("second") },
	)

	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, errs, 2)
	assert.NoError(t, errs[0])
	assert.EqualError(t, errs[1], "second")
}
