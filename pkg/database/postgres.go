package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"showtime-booking/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface is the subset of *pgxpool.Pool the repositories use
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var _ PgxIface = (*pgxpool.Pool)(nil)

// NewPoolConfig builds the pool settings for the booking database.
//
// lock_timeout bounds how long a booking waits on show_seats row locks; a
// timed out claim surfaces as a retryable error.
func NewPoolConfig(config utils.DatabaseConfig, appName string) (*pgxpool.Config, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.User, config.Password),
		Host:   net.JoinHostPort(config.Host, config.Port),
		Path:   "/" + config.Name,
	}
	q := url.Values{}
	q.Set("sslmode", config.SSLMode)
	dsn.RawQuery = q.Encode()

	poolConfig, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	poolConfig.MinConns = min(max(config.MinConns, 0), poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = config.ConnectTimeout

	params := poolConfig.ConnConfig.RuntimeParams
	params["application_name"] = appName
	if config.LockTimeout > 0 {
		params["lock_timeout"] = fmt.Sprintf("%dms", config.LockTimeout.Milliseconds())
	}
	// ends transactions a crashed handler left open
	params["idle_in_transaction_session_timeout"] = "30000ms"

	return poolConfig, nil
}

// InitDB opens the pool and checks the server answers before serving traffic
func InitDB(ctx context.Context, config utils.DatabaseConfig, appName string) (PgxIface, error) {
	poolConfig, err := NewPoolConfig(config, appName)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database %s: %w", net.JoinHostPort(config.Host, config.Port), err)
	}

	return pool, nil
}
