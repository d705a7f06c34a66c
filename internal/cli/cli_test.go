package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	grpcpresentation "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/grpc"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/auth"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/kafka"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/tlsutil"
)

type fakeClient struct {
	settings      Settings
	authorization string
	calls         int

	onboarding     *grpcpresentation.RunOnboardingRequest
	transaction    *grpcpresentation.MonitorTransactionRequest
	simSwap        *grpcpresentation.AssessSimSwapRequest
	listRequest    *grpcpresentation.ListDecisionsRequest
	decisionID     string
	controlSubject string

	onboardingResp  dto.OnboardingResponse
	transactionResp dto.TransactionResponse
	simSwapResp     dto.SimSwapResponse
	decisions       []dto.DecisionResponse
	control         dto.ControlStateResponse
}

func (f *fakeClient) record(ctx context.Context) {
	f.calls++
	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if v := md.Get("authorization"); len(v) > 0 {
			f.authorization = v[0]
		}
	}
}

func (f *fakeClient) RunOnboarding(ctx context.Context, in *grpcpresentation.RunOnboardingRequest, _ ...grpclib.CallOption) (*grpcpresentation.RunOnboardingResponse, error) {
	f.record(ctx)
	f.onboarding = in
	return &grpcpresentation.RunOnboardingResponse{Result: f.onboardingResp}, nil
}

func (f *fakeClient) MonitorTransaction(ctx context.Context, in *grpcpresentation.MonitorTransactionRequest, _ ...grpclib.CallOption) (*grpcpresentation.MonitorTransactionResponse, error) {
	f.record(ctx)
	f.transaction = in
	return &grpcpresentation.MonitorTransactionResponse{Result: f.transactionResp}, nil
}

func (f *fakeClient) AssessSimSwap(ctx context.Context, in *grpcpresentation.AssessSimSwapRequest, _ ...grpclib.CallOption) (*grpcpresentation.AssessSimSwapResponse, error) {
	f.record(ctx)
	f.simSwap = in
	return &grpcpresentation.AssessSimSwapResponse{Result: f.simSwapResp}, nil
}

func (f *fakeClient) GetDecision(ctx context.Context, in *grpcpresentation.GetDecisionRequest, _ ...grpclib.CallOption) (*grpcpresentation.GetDecisionResponse, error) {
	f.record(ctx)
	f.decisionID = in.ID
	var d dto.DecisionResponse
	if len(f.decisions) > 0 {
		d = f.decisions[0]
	}
	return &grpcpresentation.GetDecisionResponse{Decision: d}, nil
}

func (f *fakeClient) ListDecisions(ctx context.Context, in *grpcpresentation.ListDecisionsRequest, _ ...grpclib.CallOption) (*grpcpresentation.ListDecisionsResponse, error) {
	f.record(ctx)
	f.listRequest = in
	return &grpcpresentation.ListDecisionsResponse{Decisions: f.decisions}, nil
}

func (f *fakeClient) GetControlState(ctx context.Context, in *grpcpresentation.GetControlStateRequest, _ ...grpclib.CallOption) (*grpcpresentation.GetControlStateResponse, error) {
	f.record(ctx)
	f.controlSubject = in.SubjectID
	return &grpcpresentation.GetControlStateResponse{State: f.control}, nil
}

func newTestCmd(t *testing.T, client *fakeClient) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	a := newApp(&out)
	a.dial = func(_ context.Context, s Settings) (grpcpresentation.SentinelServiceClient, func() error, error) {
		client.settings = s
		return client, func() error { return nil }, nil
	}
	root := a.rootCmd()
	root.SetErr(io.Discard)
	return root, &out
}

func run(root *cobra.Command, args ...string) error {
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func sampleDecision() dto.DecisionResponse {
	return dto.DecisionResponse{
		ID:          uuid.MustParse("6f1c2d4e-8a9b-4c3d-9e0f-1a2b3c4d5e6f"),
		Kind:        "onboarding",
		SubjectID:   "user-1",
		PhoneNumber: "+99999991000",
		Tier:        "HIGH",
		Outcome:     "blocked",
		Score:       85,
		Factors:     []string{"sim_swap_recent"},
		Actions:     []string{"pause_onboarding"},
		CreatedAt:   time.Date(2024, 11, 30, 9, 0, 0, 0, time.UTC),
	}
}

func TestOnboard_TextOutput(t *testing.T) {
	client := &fakeClient{onboardingResp: dto.OnboardingResponse{
		SessionID: uuid.New(),
		Status:    "approved",
		NextStep:  "kyc",
		RiskScore: 12,
		Messages:  []string{"Number verified"},
		Actions:   []dto.ActionOutcomeResponse{{Action: "notify_user", OK: false, Error: "sms disabled"}},
	}}
	root, out := newTestCmd(t, client)

	require.NoError(t, run(root, "onboard", "--phone", "+99999991001", "--name", "Asha", "--language", "hi"))

	require.NotNil(t, client.onboarding)
	assert.Equal(t, "+99999991001", client.onboarding.PhoneNumber)
	assert.Equal(t, "Asha", client.onboarding.UserName)
	assert.Equal(t, "hi", client.onboarding.Language)
	assert.Contains(t, out.String(), "approved")
	assert.Contains(t, out.String(), "  - Number verified")
	assert.Contains(t, out.String(), "notify_user failed: sms disabled")
}

func TestOnboard_RequiresPhone(t *testing.T) {
	client := &fakeClient{}
	root, _ := newTestCmd(t, client)

	require.Error(t, run(root, "onboard"))
	assert.Zero(t, client.calls)
}

func TestOnboard_JSONOutput(t *testing.T) {
	client := &fakeClient{onboardingResp: dto.OnboardingResponse{Status: "blocked", NextStep: "contact_support", RiskScore: 90}}
	root, out := newTestCmd(t, client)

	require.NoError(t, run(root, "onboard", "--phone", "+99999991000", "-o", "json"))

	var got dto.OnboardingResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "blocked", got.Status)
	assert.Equal(t, 90, got.RiskScore)
}

func TestMonitor_RejectsMalformedAmount(t *testing.T) {
	client := &fakeClient{}
	root, _ := newTestCmd(t, client)

	err := run(root, "monitor", "--phone", "+99999991000", "--amount", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
	assert.Zero(t, client.calls)
}

func TestMonitor_YAMLOutput(t *testing.T) {
	client := &fakeClient{transactionResp: dto.TransactionResponse{RiskLevel: "HIGH", Action: "block", Blocked: true}}
	root, out := newTestCmd(t, client)

	require.NoError(t, run(root, "monitor", "--phone", "+99999991000", "--amount", "25000.50", "--merchant", "Acme", "-o", "yaml"))

	require.NotNil(t, client.transaction)
	assert.Equal(t, "25000.50", client.transaction.Amount)
	assert.Equal(t, "transfer", client.transaction.TransactionType)
	assert.Equal(t, "Acme", client.transaction.MerchantName)
	assert.Contains(t, out.String(), "risk_level: HIGH")
	assert.Contains(t, out.String(), "blocked: true")
}

func TestSimSwap_PassesWindow(t *testing.T) {
	swapped := time.Date(2024, 11, 29, 10, 42, 0, 0, time.UTC)
	client := &fakeClient{simSwapResp: dto.SimSwapResponse{Signal: dto.SimSwapSignalResponse{
		Status:      "swapped",
		Swapped:     true,
		SwapDate:    &swapped,
		MaxAgeHours: 72,
	}}}
	root, out := newTestCmd(t, client)

	require.NoError(t, run(root, "simswap", "--phone", "+99999991000", "--max-age", "72", "--user", "user-1"))

	require.NotNil(t, client.simSwap)
	assert.Equal(t, int32(72), client.simSwap.MaxAgeHours)
	assert.Equal(t, "user-1", client.simSwap.UserID)
	assert.Contains(t, out.String(), "2024-11-29T10:42:00Z")
}

func TestDecisions(t *testing.T) {
	t.Run("list renders a table", func(t *testing.T) {
		client := &fakeClient{decisions: []dto.DecisionResponse{sampleDecision()}}
		root, out := newTestCmd(t, client)

		require.NoError(t, run(root, "decisions", "list", "--phone", "+99999991000", "--limit", "5"))

		require.NotNil(t, client.listRequest)
		assert.Equal(t, int32(5), client.listRequest.Limit)
		assert.Contains(t, out.String(), "OUTCOME")
		assert.Contains(t, out.String(), "6f1c2d4e-8a9b-4c3d-9e0f-1a2b3c4d5e6f")
	})

	t.Run("empty list", func(t *testing.T) {
		root, out := newTestCmd(t, &fakeClient{})

		require.NoError(t, run(root, "decisions", "list", "--phone", "+99999991000"))
		assert.Equal(t, "no decisions\n", out.String())
	})

	t.Run("get", func(t *testing.T) {
		client := &fakeClient{decisions: []dto.DecisionResponse{sampleDecision()}}
		root, out := newTestCmd(t, client)

		require.NoError(t, run(root, "decisions", "get", "6f1c2d4e-8a9b-4c3d-9e0f-1a2b3c4d5e6f"))
		assert.Equal(t, "6f1c2d4e-8a9b-4c3d-9e0f-1a2b3c4d5e6f", client.decisionID)
		assert.Contains(t, out.String(), "sim_swap_recent")
	})

	t.Run("get requires an id", func(t *testing.T) {
		client := &fakeClient{}
		root, _ := newTestCmd(t, client)

		require.Error(t, run(root, "decisions", "get"))
		assert.Zero(t, client.calls)
	})
}

func TestControlsGet(t *testing.T) {
	client := &fakeClient{control: dto.ControlStateResponse{SubjectID: "user-1", Paused: true}}
	root, out := newTestCmd(t, client)

	require.NoError(t, run(root, "controls", "get", "user-1", "-o", "json"))

	assert.Equal(t, "user-1", client.controlSubject)
	var got dto.ControlStateResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.True(t, got.Paused)
}

func TestBearerToken(t *testing.T) {
	client := &fakeClient{}
	root, _ := newTestCmd(t, client)

	require.NoError(t, run(root, "controls", "get", "user-1", "--token", "abc"))
	assert.Equal(t, "Bearer abc", client.authorization)
}

func TestUnsupportedOutput(t *testing.T) {
	root, _ := newTestCmd(t, &fakeClient{})

	err := run(root, "controls", "get", "user-1", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestSettingsPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server: config:9090\ntimeout: 5s\nca-file: /etc/ca.pem\n"), 0o600))

	t.Run("config file", func(t *testing.T) {
		client := &fakeClient{}
		root, _ := newTestCmd(t, client)

		require.NoError(t, run(root, "controls", "get", "u", "--config", cfgPath))
		assert.Equal(t, "config:9090", client.settings.Server)
		assert.Equal(t, 5*time.Second, client.settings.Timeout)
		assert.Equal(t, "/etc/ca.pem", client.settings.CAFile)
	})

	t.Run("environment over config file", func(t *testing.T) {
		t.Setenv("SENTINEL_SERVER", "env:9090")
		t.Setenv("SENTINEL_CA_FILE", "/env/ca.pem")
		client := &fakeClient{}
		root, _ := newTestCmd(t, client)

		require.NoError(t, run(root, "controls", "get", "u", "--config", cfgPath))
		assert.Equal(t, "env:9090", client.settings.Server)
		assert.Equal(t, "/env/ca.pem", client.settings.CAFile)
	})

	t.Run("flag over environment", func(t *testing.T) {
		t.Setenv("SENTINEL_SERVER", "env:9090")
		client := &fakeClient{}
		root, _ := newTestCmd(t, client)

		require.NoError(t, run(root, "controls", "get", "u", "--config", cfgPath, "--server", "flag:9090"))
		assert.Equal(t, "flag:9090", client.settings.Server)
	})

	t.Run("defaults", func(t *testing.T) {
		client := &fakeClient{}
		root, _ := newTestCmd(t, client)

		require.NoError(t, run(root, "controls", "get", "u"))
		assert.Equal(t, "localhost:9090", client.settings.Server)
		assert.Equal(t, 30*time.Second, client.settings.Timeout)
		assert.False(t, client.settings.TLS)
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		root, _ := newTestCmd(t, &fakeClient{})

		require.Error(t, run(root, "controls", "get", "u", "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	})
}

func TestConfigInitAndShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sentinel", "config.yaml")

	root, _ := newTestCmd(t, &fakeClient{})
	require.NoError(t, run(root, "config", "init", "--config", cfgPath, "--server", "sentinel.internal:9443", "--tls"))
	require.FileExists(t, cfgPath)

	root, _ = newTestCmd(t, &fakeClient{})
	require.Error(t, run(root, "config", "init", "--config", cfgPath), "existing file needs --force")

	root, out := newTestCmd(t, &fakeClient{})
	require.NoError(t, run(root, "config", "show", "--config", cfgPath, "--token", "secret"))
	assert.Contains(t, out.String(), "server: sentinel.internal:9443")
	assert.Contains(t, out.String(), "tls: true")
	assert.Contains(t, out.String(), "<redacted>")
	assert.NotContains(t, out.String(), "secret")
}

func TestTokenIssue(t *testing.T) {
	root, out := newTestCmd(t, &fakeClient{})

	require.NoError(t, run(root, "token", "issue", "--subject", "ops-1", "--roles", "analyst,operator", "--secret", "s3cret", "-o", "json"))

	var issued issuedToken
	require.NoError(t, json.Unmarshal(out.Bytes(), &issued))

	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "s3cret"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.True(t, claims.HasRole(auth.RoleAnalyst))
	assert.True(t, claims.HasRole(auth.RoleOperator))
}

func TestTokenKeygenAndRS256Issue(t *testing.T) {
	dir := t.TempDir()
	root, out := newTestCmd(t, &fakeClient{})
	require.NoError(t, run(root, "token", "keygen", "--out", dir, "-o", "json"))

	var keys keyPair
	require.NoError(t, json.Unmarshal(out.Bytes(), &keys))

	root, out = newTestCmd(t, &fakeClient{})
	require.NoError(t, run(root, "token", "issue", "--subject", "svc-1", "--roles", "api_client", "--private-key", keys.PrivateKeyFile))

	pubPEM, err := os.ReadFile(keys.PublicKeyFile)
	require.NoError(t, err)
	validator, err := auth.NewJWTService(auth.JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.True(t, claims.HasRole(auth.RoleAPIClient))
}

func TestTokenIssue_Errors(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		root, _ := newTestCmd(t, &fakeClient{})

		err := run(root, "token", "issue", "--subject", "ops-1", "--roles", "root", "--secret", "s")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown role")
	})

	t.Run("no key material", func(t *testing.T) {
		root, _ := newTestCmd(t, &fakeClient{})

		require.Error(t, run(root, "token", "issue", "--subject", "ops-1"))
	})
}

func TestCertsGenerate(t *testing.T) {
	dir := t.TempDir()
	root, out := newTestCmd(t, &fakeClient{})

	require.NoError(t, run(root, "certs", "generate", "--out", dir, "--hosts", "localhost", "-o", "json"))

	var bundle tlsutil.Bundle
	require.NoError(t, json.Unmarshal(out.Bytes(), &bundle))
	assert.FileExists(t, bundle.CAFile)
	assert.FileExists(t, bundle.ServerKeyFile)

	_, err := tlsutil.ClientTLSConfig(bundle.CAFile, false)
	require.NoError(t, err)
}

func TestWriteEvent(t *testing.T) {
	msg := kafka.Message{
		Key:   []byte("4a7c1a8e-0000-4000-8000-000000000001"),
		Value: []byte(`{"tier":"HIGH"}`),
		Headers: map[string]string{
			events.HeaderEventID:    "e-1",
			events.HeaderEventType:  "sentinel.onboarding.decided",
			events.HeaderOccurredAt: "2024-11-30T09:00:00Z",
		},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeEvent(&buf, "json", msg))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "sentinel.onboarding.decided", line["event_type"])
		assert.Equal(t, map[string]any{"tier": "HIGH"}, line["payload"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeEvent(&buf, "text", msg))
		assert.Contains(t, buf.String(), "sentinel.onboarding.decided")
		assert.Contains(t, buf.String(), `{"tier":"HIGH"}`)
	})

	t.Run("non json payload", func(t *testing.T) {
		var buf bytes.Buffer
		bad := msg
		bad.Value = []byte("not json")
		require.NoError(t, writeEvent(&buf, "json", bad))
		assert.Contains(t, buf.String(), `"payload":"not json"`)
	})
}
