package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portsrepo "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/repositories"
	"github.com/olegmos-dev/crypto_exchange_app/internal/models"
	"github.com/olegmos-dev/crypto_exchange_app/internal/utils/mapping"
)

// PgxExchangeRateRepository implements the rate snapshot store using pgxpool.
// The table holds exactly one row per directed pair; the feed overwrites it
// in place.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

// UpsertExchangeRate inserts the snapshot or overwrites the row for the same
// directed pair. Pair-level min/max overrides survive a feed refresh: the
// update leaves them untouched unless the incoming snapshot carries its own.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (rate_id, from_currency_code, to_currency_code, rate, reverse_rate, min_amount, max_amount, source, is_active, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			reverse_rate = EXCLUDED.reverse_rate,
			min_amount = COALESCE(EXCLUDED.min_amount, exchange_rates.min_amount),
			max_amount = COALESCE(EXCLUDED.max_amount, exchange_rates.max_amount),
			source = EXCLUDED.source,
			is_active = EXCLUDED.is_active,
			fetched_at = EXCLUDED.fetched_at;
	`

	_, err := r.Pool.Exec(ctx, query,
		modelRate.RateID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.Rate,
		modelRate.ReverseRate,
		modelRate.MinAmount,
		modelRate.MaxAmount,
		modelRate.Source,
		modelRate.IsActive,
		modelRate.FetchedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate %s/%s: %w", modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
	}
	return nil
}

// FindExchangeRate retrieves the active snapshot for the exact directed pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency_code, to_currency_code, rate, reverse_rate, min_amount, max_amount, source, is_active, fetched_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_active = TRUE;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCode, toCode).Scan(
		&modelRate.RateID,
		&modelRate.FromCurrencyCode,
		&modelRate.ToCurrencyCode,
		&modelRate.Rate,
		&modelRate.ReverseRate,
		&modelRate.MinAmount,
		&modelRate.MaxAmount,
		&modelRate.Source,
		&modelRate.IsActive,
		&modelRate.FetchedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s/%s: %w", fromCode, toCode, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListActiveExchangeRates retrieves all active snapshots ordered by pair.
func (r *PgxExchangeRateRepository) ListActiveExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency_code, to_currency_code, rate, reverse_rate, min_amount, max_amount, source, is_active, fetched_at
		FROM exchange_rates
		WHERE is_active = TRUE
		ORDER BY from_currency_code, to_currency_code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		var modelRate models.ExchangeRate
		err := row.Scan(
			&modelRate.RateID,
			&modelRate.FromCurrencyCode,
			&modelRate.ToCurrencyCode,
			&modelRate.Rate,
			&modelRate.ReverseRate,
			&modelRate.MinAmount,
			&modelRate.MaxAmount,
			&modelRate.Source,
			&modelRate.IsActive,
			&modelRate.FetchedAt,
		)
		return modelRate, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}
