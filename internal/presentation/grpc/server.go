package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/auth"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/tlsutil"
)

// ServerConfig holds the gRPC transport settings.
type ServerConfig struct {
	// JWT enables bearer token authentication when set.
	JWT         *auth.JWTService
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
}

var (
	pipelineRoles = []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient}
	readerRoles   = []string{auth.RoleAdmin, auth.RoleOperator, auth.RoleAnalyst}

	methodRoles = map[string][]string{
		"/" + ServiceName + "/RunOnboarding":      pipelineRoles,
		"/" + ServiceName + "/MonitorTransaction": pipelineRoles,
		"/" + ServiceName + "/AssessSimSwap":      pipelineRoles,
		"/" + ServiceName + "/GetDecision":        readerRoles,
		"/" + ServiceName + "/ListDecisions":      readerRoles,
		"/" + ServiceName + "/GetControlState":    readerRoles,
	}
)

// Server wraps a gRPC server with the sentinel handler registered.
type Server struct {
	gs     *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(handler *SentinelHandler, cfg ServerConfig, logger *slog.Logger) (*Server, error) {
	var serverOpts []grpc.ServerOption

	if cfg.JWT != nil {
		authInterceptor := auth.UnaryAuthInterceptor(cfg.JWT, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})
		serverOpts = append(serverOpts, grpc.ChainUnaryInterceptor(authInterceptor, auth.AuthorizeMethods(methodRoles)))
	}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("grpc tls: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", cfg.TLSCertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	if cfg.Reflection {
		reflection.Register(gs)
	}

	RegisterSentinelServiceServer(gs, handler)

	return &Server{
		gs:     gs,
		health: healthSrv,
		logger: logger,
	}, nil
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
