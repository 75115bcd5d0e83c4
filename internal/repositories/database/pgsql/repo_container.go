package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Currency:     newPgxCurrencyRepository(dbPool),
		ExchangeRate: newPgxExchangeRateRepository(dbPool),
		Order:        newPgxOrderRepository(dbPool),
	}
}
