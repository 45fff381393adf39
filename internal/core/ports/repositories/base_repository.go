package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_converter/pkg/database"
)

// ConnectionFactory hands out the shared database handle for one operation.
// Repositories must not keep the handle past the operation's scope.
type ConnectionFactory interface {
	Acquire(ctx context.Context) (database.DBPool, error)
	StoreTimeout() time.Duration
}
