package pgsql

import (
	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
)

func NewRepositoryProvider(factory portsrepo.ConnectionFactory) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:    newPgxCurrencyRepository(factory),
		TransactionRepo: newPgxTransactionRepository(factory),
	}
}
