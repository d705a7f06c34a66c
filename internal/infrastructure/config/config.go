package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider modes.
const (
	ProviderModeSimulator = "simulator"
	ProviderModeLive      = "live"
)

const defaultJWTSecret = "dev-secret-change-in-prod"

// Config holds all configuration for the sentinel service.
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string

	// Telecom signal provider
	ProviderMode    string
	RapidAPIKey     string
	RapidAPIHost    string
	NACBaseURL      string
	ProviderTimeout time.Duration
	ProviderRPS     float64
	ProviderBurst   int

	OnboardingScoreSource string

	// Collaborators. Empty values select in-memory or log-only adapters.
	DatabaseURL      string
	DatabaseMaxConns int32
	KafkaBrokers     []string
	KafkaTopic       string
	RedisURL         string
	ReviewQueueKey   string
	SMSWebhookURL    string
	AgentWebhookURL  string

	// Auth
	AuthEnabled  bool
	JWTSecret    string
	JWTPublicKey string // PEM contents or a path to a PEM file

	// TLS for both listeners; empty files serve plaintext.
	TLSCertFile    string
	TLSKeyFile     string
	GRPCReflection bool

	OTELEndpoint    string
	TraceSampleRate float64

	ShutdownTimeout time.Duration
	HTTPPort        int
	GRPCPort        int
	HTTPRateLimit   int // requests per second
	RequestTimeout  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		ProviderMode:    getEnv("PROVIDER_MODE", ProviderModeSimulator),
		RapidAPIKey:     getEnv("RAPIDAPI_KEY", ""),
		RapidAPIHost:    getEnv("RAPIDAPI_HOST", "network-as-code.nokia.rapidapi.com"),
		NACBaseURL:      getEnv("NAC_BASE_URL", "https://network-as-code.p-eu.rapidapi.com"),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
		ProviderRPS:     getEnvFloat("PROVIDER_RPS", 5),
		ProviderBurst:   getEnvInt("PROVIDER_BURST", 10),

		OnboardingScoreSource: getEnv("ONBOARDING_SCORE_SOURCE", "session"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		KafkaBrokers:     getEnvList("KAFKA_BROKERS"),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "sentinel.decisions"),
		RedisURL:         getEnv("REDIS_URL", ""),
		ReviewQueueKey:   getEnv("REVIEW_QUEUE_KEY", "sentinel:manual_review"),
		SMSWebhookURL:    getEnv("SMS_WEBHOOK_URL", ""),
		AgentWebhookURL:  getEnv("AGENT_WEBHOOK_URL", ""),

		AuthEnabled:  getEnvBool("AUTH_ENABLED", false),
		JWTSecret:    getEnv("JWT_SECRET", defaultJWTSecret),
		JWTPublicKey: getEnv("JWT_PUBLIC_KEY", ""),

		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),

		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TraceSampleRate: getEnvFloat("OTEL_TRACE_SAMPLE_RATE", 1.0),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		GRPCPort:        getEnvInt("GRPC_PORT", 9090),
		HTTPRateLimit:   getEnvInt("HTTP_RPS", 100),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

// Validate reports configuration that cannot start the service.
func (c Config) Validate() error {
	var errs []error
	switch c.ProviderMode {
	case ProviderModeSimulator:
	case ProviderModeLive:
		if c.RapidAPIKey == "" {
			errs = append(errs, errors.New("RAPIDAPI_KEY is required when PROVIDER_MODE=live"))
		}
	default:
		errs = append(errs, fmt.Errorf("PROVIDER_MODE must be %q or %q, got %q", ProviderModeSimulator, ProviderModeLive, c.ProviderMode))
	}
	if c.OnboardingScoreSource != "session" && c.OnboardingScoreSource != "assessment" {
		errs = append(errs, fmt.Errorf("ONBOARDING_SCORE_SOURCE must be session or assessment, got %q", c.OnboardingScoreSource))
	}
	if c.ProviderRPS <= 0 {
		errs = append(errs, errors.New("PROVIDER_RPS must be positive"))
	}
	if c.DatabaseMaxConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS must be positive"))
	}
	if c.HTTPPort <= 0 || c.GRPCPort <= 0 {
		errs = append(errs, errors.New("HTTP_PORT and GRPC_PORT must be positive"))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.AuthEnabled && c.IsProduction() && c.JWTPublicKey == "" && c.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY must be set in production"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GRPCAddress returns the full gRPC listen address.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
