package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/currency_converter/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_converter/internal/core/ports/services"
	"github.com/SscSPs/currency_converter/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// closer is closed by the currency service's Close and is normally the connection factory.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, closer Closer) *portssvc.ServiceContainer {
	cache := NewRateCache(
		repos.CurrencyRepo,
		cfg.CacheTTL,
		WithServeStaleOnError(cfg.CacheServeStaleOnError),
	)

	converter := NewConversionService(
		repos.TransactionRepo,
		WithRecording(cfg.RecordTransactions),
	)

	slog.Info("Services initialized",
		slog.Duration("cache_ttl", cfg.CacheTTL),
		slog.Bool("serve_stale_on_error", cfg.CacheServeStaleOnError),
		slog.Bool("record_transactions", cfg.RecordTransactions))

	return &portssvc.ServiceContainer{
		Currency: NewCurrencyService(repos.CurrencyRepo, cache, converter, closer),
	}
}
