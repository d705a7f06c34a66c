package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dispatch"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/usecase"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/service"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/config"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/memory"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/messaging"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/metrics"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/notify"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/postgres"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/provider"
	redisadapter "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/infrastructure/redis"
	grpcpresentation "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/grpc"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/rest"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/auth"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/kafka"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/observability"
	pgpkg "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/postgres"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/tlsutil"
)

const serviceName = "sentineld"

// adapters holds the collaborators chosen from configuration.
type adapters struct {
	simSwap   port.SimSwapProvider
	ownership port.OwnershipProvider
	decisions port.DecisionRepository
	control   port.OnboardingControl
	queue     port.ReviewQueue
	publisher port.EventPublisher
	users     port.UserNotifier
	agents    port.AgentNotifier
	checks    map[string]rest.ReadinessCheck
	closers   []func()
}

func (a *adapters) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	scoreSource, err := usecase.ParseScoreSource(cfg.OnboardingScoreSource)
	if err != nil {
		return err
	}

	logger.Info("starting sentineld",
		"environment", cfg.Environment,
		"provider_mode", cfg.ProviderMode,
		"score_source", string(scoreSource),
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: serviceName,
		Endpoint:    cfg.OTELEndpoint,
		SampleRate:  cfg.TraceSampleRate,
		Insecure:    !cfg.IsProduction(),
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	meterProvider, reg, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		Registry:    reg,
		ServiceName: serviceName,
	})
	if err != nil {
		return err
	}
	m := metrics.New(reg)

	ad, err := buildAdapters(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer ad.close()

	// Domain services and use cases.
	onboardingPolicy := service.NewOnboardingPolicy()
	transactionPolicy := service.NewTransactionPolicy()

	signals := usecase.NewSignalCollector(ad.simSwap, ad.ownership, logger, m, nil)
	dispatcher := dispatch.NewDispatcher(ad.control, ad.queue, ad.users, ad.agents, logger, m)
	recorder := usecase.NewDecisionRecorder(ad.decisions, ad.publisher, logger, m)

	runOnboarding := usecase.NewRunOnboarding(signals, onboardingPolicy, dispatcher, recorder, scoreSource, logger, m)
	monitorTransaction := usecase.NewMonitorTransaction(signals, transactionPolicy, recorder, logger, m)
	assessSimSwap := usecase.NewAssessSimSwap(signals, onboardingPolicy, dispatcher, recorder, logger, m)
	getDecision := usecase.NewGetDecision(ad.decisions)
	getControlState := usecase.NewGetControlState(ad.control)

	jwtService, err := newJWTService(cfg)
	if err != nil {
		return err
	}

	// gRPC server.
	grpcHandler := grpcpresentation.NewSentinelHandler(runOnboarding, monitorTransaction, assessSimSwap, getDecision, getControlState, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		JWT:         jwtService,
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	restHandler := rest.NewSentinelHandler(runOnboarding, monitorTransaction, assessSimSwap, getDecision, getControlState, logger)
	router := rest.NewRouter(restHandler, rest.NewHealthHandler(ad.checks, logger), rest.RouterConfig{
		JWT:            jwtService,
		MetricsHandler: metricsHandler,
		RateLimit:      float64(cfg.HTTPRateLimit),
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if cfg.TLSCertFile != "" {
		tlsCfg, err := tlsutil.LoadServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return err
		}
		httpServer.TLSConfig = tlsCfg
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddress()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress(), "tls", httpServer.TLSConfig != nil)
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("sentineld started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
	)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down sentineld")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("meter provider shutdown error", "error", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("tracer shutdown error", "error", err)
	}

	logger.Info("sentineld stopped")
	return runErr
}

// buildAdapters picks a live or development adapter for every collaborator.
func buildAdapters(ctx context.Context, cfg config.Config, logger *slog.Logger) (*adapters, error) {
	ad := &adapters{checks: make(map[string]rest.ReadinessCheck)}
	ok := false
	defer func() {
		if !ok {
			ad.close()
		}
	}()

	switch cfg.ProviderMode {
	case config.ProviderModeLive:
		client := provider.NewNACClient(provider.NACConfig{
			BaseURL: cfg.NACBaseURL,
			Host:    cfg.RapidAPIHost,
			APIKey:  cfg.RapidAPIKey,
			Timeout: cfg.ProviderTimeout,
			RPS:     cfg.ProviderRPS,
			Burst:   cfg.ProviderBurst,
		})
		ad.simSwap, ad.ownership = client, client
		logger.Info("using Network-as-Code provider", "base_url", cfg.NACBaseURL)
	default:
		sim := provider.NewSimulator()
		ad.simSwap, ad.ownership = sim, sim
		logger.Info("using simulator provider")
	}

	if cfg.DatabaseURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := pgpkg.NewPool(dbCtx, pgpkg.Config{
			URL:             cfg.DatabaseURL,
			ApplicationName: serviceName,
			MaxConns:        cfg.DatabaseMaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		ad.closers = append(ad.closers, pool.Close)

		if err := pgpkg.RunMigrationsFS(cfg.DatabaseURL, postgres.Migrations, postgres.MigrationsDir); err != nil {
			return nil, err
		}
		logger.Info("connected to database, migrations applied")

		ad.decisions = postgres.NewDecisionRepository(pool)
		ad.control = postgres.NewControlStore(pool)
		ad.checks["postgres"] = pgpkg.HealthCheck(pool)
	} else {
		logger.Warn("DATABASE_URL not set, decisions and onboarding controls are kept in memory")
		ad.decisions = memory.NewDecisionRepository()
		ad.control = memory.NewControlStore()
	}

	if cfg.RedisURL != "" {
		client, err := redisadapter.NewClient(ctx, redisadapter.Config{URL: cfg.RedisURL})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		ad.closers = append(ad.closers, func() { _ = client.Close() })

		ad.queue = redisadapter.NewReviewQueue(client, cfg.ReviewQueueKey)
		ad.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		logger.Info("manual review queue on redis", "key", cfg.ReviewQueueKey)
	} else {
		logger.Warn("REDIS_URL not set, manual review queue is kept in memory")
		ad.queue = memory.NewReviewQueue()
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(kafka.Config{Brokers: cfg.KafkaBrokers})
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}
		ad.closers = append(ad.closers, func() { _ = producer.Close() })

		ad.publisher = messaging.NewKafkaPublisher(producer, cfg.KafkaTopic, logger)
		logger.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		ad.publisher = messaging.NewLogPublisher(logger)
	}

	logNotifier := notify.NewLogNotifier(logger)
	webhook := notify.NewWebhookNotifier(cfg.SMSWebhookURL, cfg.AgentWebhookURL, cfg.ProviderTimeout)
	ad.users, ad.agents = logNotifier, logNotifier
	if cfg.SMSWebhookURL != "" {
		ad.users = webhook
	}
	if cfg.AgentWebhookURL != "" {
		ad.agents = webhook
	}

	ok = true
	return ad, nil
}

// newJWTService returns nil when authentication is disabled.
func newJWTService(cfg config.Config) (*auth.JWTService, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}

	jwtCfg := auth.JWTConfig{Secret: cfg.JWTSecret}
	if key := strings.TrimSpace(cfg.JWTPublicKey); key != "" {
		if !strings.HasPrefix(key, "-----BEGIN") {
			pem, err := auth.LoadKeyFromFile(key)
			if err != nil {
				return nil, err
			}
			key = string(pem)
		}
		jwtCfg = auth.JWTConfig{PublicKeyPEM: key}
	}

	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("configure jwt: %w", err)
	}
	return svc, nil
}
