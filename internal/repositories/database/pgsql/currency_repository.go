package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/SscSPs/currency_converter/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
	"github.com/SscSPs/currency_converter/internal/models"
	"github.com/SscSPs/currency_converter/internal/utils/mapping"
	"github.com/SscSPs/currency_converter/pkg/database"
	"github.com/jackc/pgx/v5"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(factory portsrepo.ConnectionFactory) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Factory: factory},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// ListCurrencies retrieves all currencies ordered by abbreviation.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT abbreviation, name, rate_to_usd
		FROM currency
		ORDER BY abbreviation;
	`
	var currencies []domain.Currency
	err := r.withConn(ctx, func(ctx context.Context, db database.DBPool) error {
		rows, err := db.Query(ctx, query)
		if err != nil {
			return storeError("failed to query currencies", err)
		}
		defer rows.Close()

		modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
			var currency models.Currency
			err := row.Scan(
				&currency.Abbreviation,
				&currency.Name,
				&currency.RateToUSD,
			)
			return currency, err
		})
		if err != nil {
			return storeError("failed to scan currencies", err)
		}

		currencies = mapping.ToDomainCurrencySlice(modelCurrencies)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return currencies, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	code = domain.NormalizeCode(code)
	query := `
		SELECT abbreviation, name, rate_to_usd
		FROM currency
		WHERE abbreviation = $1;
	`
	var modelCurr models.Currency
	err := r.withConn(ctx, func(ctx context.Context, db database.DBPool) error {
		err := db.QueryRow(ctx, query, code).Scan(
			&modelCurr.Abbreviation,
			&modelCurr.Name,
			&modelCurr.RateToUSD,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError(fmt.Sprintf("currency %s not found", code))
			}
			return storeError(fmt.Sprintf("failed to find currency by code %s", code), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// CurrencyExists reports whether a currency with the given code is stored.
func (r *PgxCurrencyRepository) CurrencyExists(ctx context.Context, code string) (bool, error) {
	code = domain.NormalizeCode(code)
	var exists bool
	err := r.withConn(ctx, func(ctx context.Context, db database.DBPool) error {
		if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM currency WHERE abbreviation = $1);`, code).Scan(&exists); err != nil {
			return storeError(fmt.Sprintf("failed to check currency %s", code), err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// InsertCurrency persists a new currency atomically. An existing abbreviation
// is rejected with apperrors.ErrDuplicate and the stored record is left untouched.
func (r *PgxCurrencyRepository) InsertCurrency(ctx context.Context, currency domain.Currency) error {
	currency.Abbreviation = domain.NormalizeCode(currency.Abbreviation)
	if err := currency.Validate(); err != nil {
		return err
	}
	modelCurr := mapping.ToModelCurrency(currency)

	return r.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM currency WHERE abbreviation = $1);`, modelCurr.Abbreviation).Scan(&exists)
		if err != nil {
			return storeError(fmt.Sprintf("failed to check currency %s", modelCurr.Abbreviation), err)
		}
		if exists {
			return apperrors.NewDuplicateError(fmt.Sprintf("currency %s already exists", modelCurr.Abbreviation))
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO currency (abbreviation, name, rate_to_usd)
			VALUES ($1, $2, $3);
		`, modelCurr.Abbreviation, modelCurr.Name, modelCurr.RateToUSD)
		if err != nil {
			// A concurrent insert of the same code can still win between the check and the insert
			if isUniqueViolation(err) {
				return apperrors.NewDuplicateError(fmt.Sprintf("currency %s already exists", modelCurr.Abbreviation))
			}
			return storeError(fmt.Sprintf("failed to insert currency %s", modelCurr.Abbreviation), err)
		}
		return nil
	})
}

// UpdateCurrencyRate sets a new rate and returns the number of rows affected.
// The row is locked by the existence check; zero affected rows after that check
// means the currency disappeared concurrently and is reported as not found.
func (r *PgxCurrencyRepository) UpdateCurrencyRate(ctx context.Context, code string, newRate float64) (int64, error) {
	if newRate <= 0 {
		return 0, apperrors.ErrInvalidRate
	}
	code = domain.NormalizeCode(code)

	var affected int64
	err := r.withTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var found int
		err := tx.QueryRow(ctx, `SELECT 1 FROM currency WHERE abbreviation = $1 FOR UPDATE;`, code).Scan(&found)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError(fmt.Sprintf("currency %s not found", code))
			}
			return storeError(fmt.Sprintf("failed to lock currency %s", code), err)
		}

		tag, err := tx.Exec(ctx, `UPDATE currency SET rate_to_usd = $1 WHERE abbreviation = $2;`, newRate, code)
		if err != nil {
			return storeError(fmt.Sprintf("failed to update rate for %s", code), err)
		}
		affected = tag.RowsAffected()
		if affected == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("currency %s not found", code))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
