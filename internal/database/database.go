// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It specifically handles *database pooling*: every request leases
// one connection, runs its statements on it, and hands it back.
//
// It handles:
//   - building a DSN from config
//   - creating a bounded pgx connection pool (pgxpool)
//   - acquire/release with a bounded wait, and a draining shutdown
//   - wiring query tracing/logging (pgx tracelog, slow query log)
//   - optional New Relic instrumentation (nrpgx5)
//   - schema bootstrap (tern) and pool metrics (prometheus)
package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/deppfellow/flashcards/internal/config"
	loggerConfig "github.com/deppfellow/flashcards/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

var (
	// ErrPoolClosed is returned by Acquire once Close has been called.
	ErrPoolClosed = errors.New("database: connection pool is closed")

	// ErrPoolExhausted is returned when no connection frees up within the
	// configured acquire timeout.
	ErrPoolExhausted = errors.New("database: connection pool exhausted")
)

const (
	pingRetries     = 4
	pingBackoffBase = 500 * time.Millisecond
)

// Querier is the statement surface repositories need. A leased Conn
// satisfies it, and so do pgx transactions and pgxmock in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn is a connection leased from the pool. It is exclusively owned by
// the caller until Release, which must run on every exit path.
type Conn interface {
	Querier
	Release()
}

// Database wraps the pgx connection pool and a logger.
// It provides a simple object you can pass around the app.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger

	acquireTimeout  time.Duration
	closed          atomic.Bool
	acquireFailures prometheus.Counter
}

// lease makes Release idempotent; pgxpool panics on a double release.
type lease struct {
	*pgxpool.Conn
	once    sync.Once
	release func()
}

func newLease(conn *pgxpool.Conn) *lease {
	return &lease{Conn: conn, release: conn.Release}
}

func (l *lease) Release() {
	l.once.Do(l.release)
}

// DSN builds a postgres URL from cfg. The password is URL-escaped and
// IPv6 hosts are bracketed.
func DSN(cfg config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// New creates a PostgreSQL connection pool with instrumentation and
// verifies it can reach the server.
//
// Inputs:
//   - cfg: application config (host, port, credentials, pool bounds)
//   - logger: main app logger
//   - loggerService: optional New Relic service (nil if not configured)
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	poolCfg, err := buildPoolConfig(cfg, logger, loggerService)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	db := newDatabase(pool, logger, cfg.Database.AcquireTimeout)

	if err := db.ping(ctx, cfg.Database.PingTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("db_name", cfg.Database.Name).
		Int32("max_conns", poolCfg.MaxConns).
		Int32("min_conns", poolCfg.MinConns).
		Dur("acquire_timeout", db.acquireTimeout).
		Msg("connected to the database")

	return db, nil
}

func newDatabase(pool *pgxpool.Pool, logger *zerolog.Logger, acquireTimeout time.Duration) *Database {
	if acquireTimeout <= 0 {
		acquireTimeout = 5 * time.Second
	}
	return &Database{
		Pool:           pool,
		log:            logger,
		acquireTimeout: acquireTimeout,
		acquireFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flashcards_db_pool_acquire_failures_total",
			Help: "Connection acquire attempts that failed.",
		}),
	}
}

func buildPoolConfig(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(DSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	poolCfg.MaxConns, poolCfg.MinConns = connectionBounds(cfg.Database)
	if cfg.Database.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second
	}

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if threshold := slowQueryThreshold(cfg); threshold > 0 {
		tracers = append(tracers, &slowQueryTracer{threshold: threshold, log: logger})
	}

	// Statement logging is noisy, so it is only enabled locally.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		poolCfg.ConnConfig.Tracer = tracers[0]
	default:
		poolCfg.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return poolCfg, nil
}

func slowQueryThreshold(cfg *config.Config) time.Duration {
	if cfg.Observability == nil {
		return 0
	}
	return cfg.Observability.Logging.SlowQueryThreshold
}

// connectionBounds converts configured sizes to pgxpool bounds. Idle
// connections kept warm never exceed the maximum.
func connectionBounds(cfg config.DatabaseConfig) (int32, int32) {
	maxConns := clampInt32(cfg.MaxOpenConns)
	if maxConns <= 0 {
		maxConns = 10
	}
	minConns := clampInt32(cfg.MaxIdleConns)
	if minConns > maxConns {
		minConns = maxConns
	}
	return maxConns, minConns
}

func clampInt32(v int) int32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(v)
	}
}

// ping verifies connectivity, retrying with exponential backoff so the
// service survives a database that starts slightly later than it does.
func (db *Database) ping(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	backoff := retry.WithMaxRetries(pingRetries, retry.NewExponential(pingBackoffBase))
	attempt := 0

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := db.Pool.Ping(pingCtx); err != nil {
			db.log.Warn().Err(err).Int("attempt", attempt).Msg("database ping failed")
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Acquire leases one connection from the pool.
//
// It waits at most the configured acquire timeout. The returned Conn must
// be released exactly once; extra Release calls are ignored.
func (db *Database) Acquire(ctx context.Context) (Conn, error) {
	if db.closed.Load() {
		return nil, ErrPoolClosed
	}

	acquireCtx, cancel := context.WithTimeout(ctx, db.acquireTimeout)
	defer cancel()

	conn, err := db.Pool.Acquire(acquireCtx)
	if err != nil {
		db.acquireFailures.Inc()

		switch {
		case db.closed.Load():
			return nil, ErrPoolClosed
		case ctx.Err() == nil && errors.Is(acquireCtx.Err(), context.DeadlineExceeded):
			db.log.Warn().
				Dur("acquire_timeout", db.acquireTimeout).
				Int32("acquired_conns", db.Pool.Stat().AcquiredConns()).
				Msg("no database connection available")
			return nil, fmt.Errorf("%w after %s: %w", ErrPoolExhausted, db.acquireTimeout, err)
		default:
			return nil, fmt.Errorf("failed to acquire connection: %w", err)
		}
	}

	return newLease(conn), nil
}

// Ping checks that the database answers. Used by the health endpoint.
func (db *Database) Ping(ctx context.Context) error {
	if db.closed.Load() {
		return ErrPoolClosed
	}
	return db.Pool.Ping(ctx)
}

// Stats returns a snapshot of the pool counters.
func (db *Database) Stats() *pgxpool.Stat {
	return db.Pool.Stat()
}

// Close refuses new acquires immediately, then blocks until every leased
// connection has been released and closed. Calling it again is a no-op.
func (db *Database) Close() error {
	if !db.closed.CompareAndSwap(false, true) {
		return nil
	}

	db.log.Info().
		Int32("acquired_conns", db.Pool.Stat().AcquiredConns()).
		Msg("closing database connection pool")
	db.Pool.Close()
	db.log.Info().Msg("database connection pool closed")
	return nil
}
