package pgsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
	"github.com/SscSPs/currency_converter/internal/middleware"
	"github.com/SscSPs/currency_converter/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories.
// It borrows the shared handle from the factory per operation and never keeps it.
type BaseRepository struct {
	Factory portsrepo.ConnectionFactory
}

// withTimeout applies the factory's store timeout, if any.
func (r *BaseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := r.Factory.StoreTimeout(); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// withConn runs a read-only operation without an explicit transaction.
func (r *BaseRepository) withConn(ctx context.Context, fn func(ctx context.Context, db database.DBPool) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db, err := r.Factory.Acquire(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, db)
}

// withTx runs fn inside begin → apply → commit. Any error from fn, or a panic,
// rolls the transaction back before the error propagates. A failing rollback is
// logged and does not mask the original error.
func (r *BaseRepository) withTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	db, err := r.Factory.Acquire(ctx)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx, db)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction",
				slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	committed = true
	return nil
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context, db database.DBPool) (pgx.Tx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return storeError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. It runs even when ctx is already done so the
// connection goes back to the pool in a clean state.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return storeError("failed to rollback transaction", err)
	}
	return nil
}

// storeError maps a driver error to apperrors.ErrStoreUnavailable.
// Errors that already carry an application kind pass through unchanged.
func storeError(message string, err error) error {
	if isAppError(err) {
		return err
	}
	return apperrors.NewStoreUnavailableError(message, err)
}

func isAppError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrStoreUnavailable) ||
		errors.Is(err, apperrors.ErrResourceClosed)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
