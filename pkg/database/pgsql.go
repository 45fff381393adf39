package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the handle repositories borrow for the duration of one operation.
// *pgxpool.Pool satisfies it.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Config holds the connection settings. It is read once, when the pool is opened.
type Config struct {
	URL      string
	User     string
	Password string
	// PingOnOpen verifies connectivity when the pool is created.
	PingOnOpen bool
	// StoreTimeout bounds every store call. Zero means no timeout.
	StoreTimeout time.Duration
}

// OpenFunc opens the underlying pool.
type OpenFunc func(ctx context.Context, cfg Config) (DBPool, error)

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithOpenFunc replaces the pgxpool opener, mainly for tests.
func WithOpenFunc(open OpenFunc) FactoryOption {
	return func(f *Factory) { f.open = open }
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}

type pooled struct {
	pool DBPool
}

// Factory owns the single shared connection pool. The pool is created lazily on
// the first Acquire, exactly once even under concurrent first use, and is
// released by Close. Only the Factory creates or destroys the pool.
type Factory struct {
	cfg    Config
	open   OpenFunc
	logger *slog.Logger

	mu     sync.Mutex
	ready  atomic.Pointer[pooled]
	closed atomic.Bool
}

// NewFactory creates a Factory. No connection is made until Acquire is called.
func NewFactory(cfg Config, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:    cfg,
		open:   openPgxPool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Acquire returns the shared pool, opening it on first use.
// It fails with apperrors.ErrResourceClosed once Close has been called and with
// apperrors.ErrStoreUnavailable when the pool cannot be opened. A failed open is
// retried by the next Acquire.
func (f *Factory) Acquire(ctx context.Context) (DBPool, error) {
	if p := f.ready.Load(); p != nil && !f.closed.Load() {
		return p.pool, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed.Load() {
		return nil, fmt.Errorf("cannot acquire connection: %w", apperrors.ErrResourceClosed)
	}
	if p := f.ready.Load(); p != nil {
		return p.pool, nil
	}

	pool, err := f.open(ctx, f.cfg)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to open database connection pool", err)
	}
	f.ready.Store(&pooled{pool: pool})
	f.logger.Info("Database connection pool established.")
	return pool, nil
}

// StoreTimeout is the per-call timeout repositories apply to store operations.
func (f *Factory) StoreTimeout() time.Duration {
	return f.cfg.StoreTimeout
}

// Close releases the pool. It is safe to call more than once.
func (f *Factory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed.Swap(true) {
		return
	}
	if p := f.ready.Swap(nil); p != nil {
		p.pool.Close()
		f.logger.Info("PostgreSQL connection pool closed.")
	}
}

// NewPgxPool creates a new PostgreSQL connection pool.
// Explicit cfg.User and cfg.Password override credentials embedded in the URL.
func NewPgxPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if cfg.User != "" {
		poolConfig.ConnConfig.User = cfg.User
	}
	if cfg.Password != "" {
		poolConfig.ConnConfig.Password = cfg.Password
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if cfg.PingOnOpen {
		if err := pool.Ping(ctx); err != nil {
			pool.Close() // Close the pool if ping fails
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	return pool, nil
}

func openPgxPool(ctx context.Context, cfg Config) (DBPool, error) {
	pool, err := NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
