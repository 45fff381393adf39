package repositories

import (
	"context"

	"github.com/SscSPs/currency_converter/internal/core/domain"
)

// TransactionWriter appends conversion records to the ledger.
// The ledger is append-only; there are no update or delete operations.
type TransactionWriter interface {
	// SaveTransaction persists txn in its own transaction and sets txn.TransactionID.
	SaveTransaction(ctx context.Context, txn *domain.ConversionTransaction) error
}
