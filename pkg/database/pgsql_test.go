package database_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/SscSPs/currency_converter/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePool only implements Close; the factory never calls anything else.
type fakePool struct {
	database.DBPool
	closed atomic.Int32
}

func (p *fakePool) Close() { p.closed.Add(1) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCountingFactory(pool *fakePool, opens *atomic.Int32) *database.Factory {
	return database.NewFactory(
		database.Config{URL: "postgres://localhost:5432/currency_db"},
		database.WithLogger(quietLogger()),
		database.WithOpenFunc(func(ctx context.Context, cfg database.Config) (database.DBPool, error) {
			opens.Add(1)
			return pool, nil
		}),
	)
}

func TestFactory_LazyOpen(t *testing.T) {
	var opens atomic.Int32
	pool := &fakePool{}
	f := newCountingFactory(pool, &opens)

	assert.Equal(t, int32(0), opens.Load(), "pool must not be opened before first use")

	got, err := f.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, pool, got)

	got, err = f.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, pool, got)
	assert.Equal(t, int32(1), opens.Load())
}

func TestFactory_ConcurrentFirstUseOpensOnce(t *testing.T) {
	var opens atomic.Int32
	pool := &fakePool{}
	f := newCountingFactory(pool, &opens)

	const callers = 64
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			p, err := f.Acquire(context.Background())
			if err == nil && p != pool {
				err = errors.New("got a different pool")
			}
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), opens.Load())
}

func TestFactory_AcquireAfterClose(t *testing.T) {
	var opens atomic.Int32
	pool := &fakePool{}
	f := newCountingFactory(pool, &opens)

	_, err := f.Acquire(context.Background())
	require.NoError(t, err)

	f.Close()
	f.Close() // second close is a no-op
	assert.Equal(t, int32(1), pool.closed.Load())

	_, err = f.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrResourceClosed)
	assert.Equal(t, int32(1), opens.Load())
}

func TestFactory_CloseBeforeUse(t *testing.T) {
	var opens atomic.Int32
	f := newCountingFactory(&fakePool{}, &opens)

	f.Close()

	_, err := f.Acquire(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrResourceClosed)
	assert.Equal(t, int32(0), opens.Load())
}

func TestFactory_OpenFailureIsRetried(t *testing.T) {
	pool := &fakePool{}
	var calls atomic.Int32
	f := database.NewFactory(
		database.Config{URL: "postgres://localhost:5432/currency_db"},
		database.WithLogger(quietLogger()),
		database.WithOpenFunc(func(ctx context.Context, cfg database.Config) (database.DBPool, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("connection refused")
			}
			return pool, nil
		}),
	)

	_, err := f.Acquire(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "connection refused")

	got, err := f.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, pool, got)
}

func TestNewPgxPool_EmptyURL(t *testing.T) {
	_, err := database.NewPgxPool(context.Background(), database.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL cannot be empty")
}
