// Package apperrors defines the error kinds that cross layer boundaries:
// provider failures, invalid requests, failed remediation actions and
// missing records.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no record matches.
var ErrNotFound = errors.New("not found")

// ProviderCategory is the normalized failure taxonomy for telecom providers.
type ProviderCategory string

const (
	ProviderTimeout        ProviderCategory = "timeout"
	ProviderBadData        ProviderCategory = "bad_data"
	ProviderAuthentication ProviderCategory = "authentication"
	ProviderOutage         ProviderCategory = "provider_outage"
	ProviderRateLimited    ProviderCategory = "rate_limited"
	ProviderInternal       ProviderCategory = "internal"
)

// ProviderError wraps a failed signal fetch with a normalized category.
type ProviderError struct {
	Category   ProviderCategory
	Provider   string
	Message    string
	Underlying error
}

// NewProviderError creates a ProviderError.
func NewProviderError(category ProviderCategory, provider, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		Provider:   provider,
		Message:    message,
		Underlying: underlying,
	}
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.Provider, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.Provider, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// Retryable reports whether the failure is transient.
func (e *ProviderError) Retryable() bool {
	return e.Category == ProviderTimeout || e.Category == ProviderOutage || e.Category == ProviderRateLimited
}

// ProviderCategoryOf extracts the category from err, or ProviderInternal.
func ProviderCategoryOf(err error) ProviderCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ProviderInternal
}

// ValidationError reports a malformed request. It is the only error the
// decision pipeline returns to its callers.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ActionDispatchError records a remediation action that failed to execute.
type ActionDispatchError struct {
	Action     string
	Underlying error
}

func (e *ActionDispatchError) Error() string {
	return fmt.Sprintf("action %s failed: %v", e.Action, e.Underlying)
}

func (e *ActionDispatchError) Unwrap() error {
	return e.Underlying
}
