package cli

import (
	"context"
	"fmt"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	grpcpresentation "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/grpc"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/tlsutil"
)

func dialSentinel(_ context.Context, s Settings) (grpcpresentation.SentinelServiceClient, func() error, error) {
	creds := insecure.NewCredentials()
	if s.TLS || s.CAFile != "" || s.InsecureSkipVerify {
		var err error
		creds, err = transportCredentials(s)
		if err != nil {
			return nil, nil, err
		}
	}

	conn, err := grpclib.NewClient(s.Server, grpclib.WithTransportCredentials(creds))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", s.Server, err)
	}
	return grpcpresentation.NewSentinelServiceClient(conn), conn.Close, nil
}

func transportCredentials(s Settings) (credentials.TransportCredentials, error) {
	creds, err := tlsutil.ClientTLSConfig(s.CAFile, s.InsecureSkipVerify)
	if err != nil {
		return nil, fmt.Errorf("load client tls: %w", err)
	}
	return creds, nil
}

func withToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}
