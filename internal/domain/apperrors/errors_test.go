package apperrors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
)

func TestProviderError(t *testing.T) {
	err := apperrors.NewProviderError(apperrors.ProviderTimeout, "network-as-code", "sim swap check", context.DeadlineExceeded)

	assert.Equal(t, "provider network-as-code [timeout]: sim swap check: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, err.Retryable())

	wrapped := fmt.Errorf("collect: %w", err)
	assert.Equal(t, apperrors.ProviderTimeout, apperrors.ProviderCategoryOf(wrapped))
	assert.Equal(t, apperrors.ProviderInternal, apperrors.ProviderCategoryOf(errors.New("plain")))
}

func TestProviderError_NotRetryable(t *testing.T) {
	for _, c := range []apperrors.ProviderCategory{apperrors.ProviderAuthentication, apperrors.ProviderBadData, apperrors.ProviderInternal} {
		assert.False(t, apperrors.NewProviderError(c, "p", "m", nil).Retryable(), string(c))
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("run onboarding: %w", apperrors.NewValidationError("phone_number", "is required"))

	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, apperrors.IsValidation(errors.New("other")))
	assert.Contains(t, err.Error(), "invalid phone_number: is required")
}

func TestActionDispatchError(t *testing.T) {
	cause := errors.New("queue unavailable")
	err := &apperrors.ActionDispatchError{Action: "enqueue_manual_review", Underlying: cause}

	assert.Equal(t, "action enqueue_manual_review failed: queue unavailable", err.Error())
	assert.ErrorIs(t, err, cause)
}
