package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool defaults applied when the matching Config field is zero.
const (
	DefaultMaxConns        int32 = 10
	DefaultMaxConnLifetime       = time.Hour
	DefaultMaxConnIdleTime       = 30 * time.Minute
)

// Config holds PostgreSQL pool parameters.
type Config struct {
	// URL is a postgres:// connection string or a key=value DSN.
	URL string

	// ApplicationName is reported to the server as application_name.
	ApplicationName string

	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	MaxConns        int32
	MinConns        int32
}

func (c Config) poolConfig() (*pgxpool.Config, error) {
	if c.URL == "" {
		return nil, errors.New("postgres: connection url is required")
	}
	poolCfg, err := pgxpool.ParseConfig(c.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	poolCfg.MaxConns = DefaultMaxConns
	if c.MaxConns > 0 {
		poolCfg.MaxConns = c.MaxConns
	}
	if c.MinConns > 0 {
		poolCfg.MinConns = min(c.MinConns, poolCfg.MaxConns)
	}
	poolCfg.MaxConnLifetime = DefaultMaxConnLifetime
	if c.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = c.MaxConnLifetime
	}
	poolCfg.MaxConnIdleTime = DefaultMaxConnIdleTime
	if c.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = c.MaxConnIdleTime
	}
	if c.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = c.ApplicationName
	}
	return poolCfg, nil
}

// NewPool opens a pool and pings the database before returning it.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := cfg.poolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return pool, nil
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck returns a readiness probe for db.
func HealthCheck(db Pinger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: health check: %w", err)
		}
		return nil
	}
}
