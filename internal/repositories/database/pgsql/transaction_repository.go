package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/SscSPs/currency_converter/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
	"github.com/SscSPs/currency_converter/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxTransactionRepository is the append-only conversion ledger.
// It shares the connection factory with the currency store but none of its transactions.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(factory portsrepo.ConnectionFactory) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Factory: factory},
	}
}

var _ portsrepo.TransactionWriter = (*PgxTransactionRepository)(nil)

// SaveTransaction stores a new ledger row in its own transaction and sets
// txn.TransactionID to the identity assigned by the database.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.ConversionTransaction) error {
	if txn == nil {
		return apperrors.NewValidationError("transaction cannot be nil")
	}
	if txn.SourceAmount < 0 || txn.TargetAmount < 0 {
		return apperrors.NewValidationError("transaction amounts cannot be negative")
	}
	modelTxn := mapping.ToModelTransaction(*txn)

	var id int64
	err := r.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO "transaction" (source_currency, target_currency, source_amount, target_amount, transaction_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING transaction_id;
		`,
			modelTxn.SourceCurrency,
			modelTxn.TargetCurrency,
			modelTxn.SourceAmount,
			modelTxn.TargetAmount,
			modelTxn.TransactionDate,
		).Scan(&id)
		if err != nil {
			return storeError(fmt.Sprintf("failed to save transaction %s -> %s", modelTxn.SourceCurrency, modelTxn.TargetCurrency), err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	txn.TransactionID = id
	return nil
}
