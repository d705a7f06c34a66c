package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *NACClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewNACClient(NACConfig{
		BaseURL: srv.URL + "/",
		Host:    "nac.test",
		APIKey:  "secret",
		Timeout: time.Second,
	})
}

func TestNACClient_CheckSimSwap(t *testing.T) {
	var got simSwapCheckRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, simSwapCheckPath, r.URL.Path)
		assert.Equal(t, "nac.test", r.Header.Get("x-rapidapi-host"))
		assert.Equal(t, "secret", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"swapped": true, "simSwapDate": "2024-11-29T10:42:00Z"}`))
	})

	result, err := client.CheckSimSwap(context.Background(), "+99999991000", 240)
	require.NoError(t, err)

	assert.Equal(t, simSwapCheckRequest{PhoneNumber: "+99999991000", MaxAge: 240}, got)
	assert.True(t, result.Swapped)
	require.NotNil(t, result.SwapDate)
	assert.True(t, result.SwapDate.Equal(SimulatorSwapDate))
}

func TestNACClient_CheckSimSwap_LatestSimChange(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"swapped": false, "latestSimChange": "2024-10-01T00:00:00Z"}`))
	})

	result, err := client.CheckSimSwap(context.Background(), "+99999991001", 24)
	require.NoError(t, err)
	assert.False(t, result.Swapped)
	require.NotNil(t, result.SwapDate)
	assert.Equal(t, 2024, result.SwapDate.Year())
}

func TestNACClient_CheckSimSwap_BadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing swapped", `{"detail": "ok"}`},
		{"bad date", `{"swapped": true, "simSwapDate": "yesterday"}`},
		{"not json", `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CheckSimSwap(context.Background(), "+99999991000", 240)
			assert.Equal(t, apperrors.ProviderBadData, apperrors.ProviderCategoryOf(err))
		})
	}
}

func TestNACClient_VerifyOwnership(t *testing.T) {
	var got numberVerificationRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, numberVerificationPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"devicePhoneNumberVerified": false}`))
	})

	result, err := client.VerifyOwnership(context.Background(), "+99999991000")
	require.NoError(t, err)
	assert.Equal(t, "+99999991000", got.PhoneNumber)
	assert.False(t, result.Verified)
}

func TestNACClient_StatusCategories(t *testing.T) {
	tests := []struct {
		status int
		want   apperrors.ProviderCategory
	}{
		{http.StatusUnauthorized, apperrors.ProviderAuthentication},
		{http.StatusForbidden, apperrors.ProviderAuthentication},
		{http.StatusTooManyRequests, apperrors.ProviderRateLimited},
		{http.StatusBadRequest, apperrors.ProviderBadData},
		{http.StatusUnprocessableEntity, apperrors.ProviderBadData},
		{http.StatusGatewayTimeout, apperrors.ProviderTimeout},
		{http.StatusServiceUnavailable, apperrors.ProviderOutage},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message": "nope"}`))
			})

			_, err := client.VerifyOwnership(context.Background(), "+99999991000")

			var pe *apperrors.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.want, pe.Category)
			assert.Equal(t, nacProviderName, pe.Provider)
			assert.Contains(t, pe.Message, "nope")
		})
	}
}

func TestNACClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	client := NewNACClient(NACConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := client.CheckSimSwap(context.Background(), "+99999991000", 240)

	var pe *apperrors.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, apperrors.ProviderTimeout, pe.Category)
	assert.True(t, pe.Retryable())
}

func TestNACClient_CancelledContextWhileRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"devicePhoneNumberVerified": true}`))
	})
	client.limiter.SetLimit(0.001)
	client.limiter.SetBurst(1)

	_, err := client.VerifyOwnership(context.Background(), "+99999991000")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.VerifyOwnership(ctx, "+99999991000")
	assert.Equal(t, apperrors.ProviderRateLimited, apperrors.ProviderCategoryOf(err))
}

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, apperrors.ProviderInternal, statusCategory(http.StatusMultipleChoices))
	assert.Equal(t, apperrors.ProviderOutage, statusCategory(http.StatusBadGateway))
}
