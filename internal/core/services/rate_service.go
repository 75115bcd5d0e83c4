package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portsrepo "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reverseRateScale is the precision at which the inverse rate is derived.
const reverseRateScale = 18

// RateService provides rate snapshots to the quote engine and accepts fresh
// rates from the feed.
type RateService struct {
	rateRepo        portsrepo.ExchangeRateRepository
	currencyService portssvc.CurrencySvcFacade
	maxStaleness    time.Duration // 0 disables the staleness check
	now             func() time.Time
}

// NewRateService creates a new RateService. A nil clock defaults to time.Now.
func NewRateService(rateRepo portsrepo.ExchangeRateRepository, currencyService portssvc.CurrencySvcFacade, maxStaleness time.Duration, clock func() time.Time) *RateService {
	if clock == nil {
		clock = time.Now
	}
	return &RateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		maxStaleness:    maxStaleness,
		now:             clock,
	}
}

var _ portssvc.RateSvcFacade = (*RateService)(nil)

// GetExchangeRate resolves the directed rate for (from, to). When the direct
// pair is missing, the reverse pair's inverse is used. Storage failures and
// stale snapshots both surface as ErrNoRateAvailable: the quote engine never
// hangs on or propagates provider internals.
func (s *RateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	switch {
	case err == nil:
		// direct hit
	case errors.Is(err, apperrors.ErrNotFound):
		reverse, revErr := s.rateRepo.FindExchangeRate(ctx, toCode, fromCode)
		if revErr != nil {
			if errors.Is(revErr, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrNoRateAvailable, fromCode, toCode)
			}
			return nil, fmt.Errorf("%w: %s/%s: %v", apperrors.ErrNoRateAvailable, fromCode, toCode, revErr)
		}
		inverted := reverse.Inverted()
		rate = &inverted
	default:
		return nil, fmt.Errorf("%w: %s/%s: %v", apperrors.ErrNoRateAvailable, fromCode, toCode, err)
	}

	if s.maxStaleness > 0 && s.now().Sub(rate.FetchedAt) > s.maxStaleness {
		return nil, fmt.Errorf("%w: snapshot for %s/%s is older than %s", apperrors.ErrNoRateAvailable, fromCode, toCode, s.maxStaleness)
	}

	return rate, nil
}

// ListExchangeRates returns all active rate snapshots.
func (s *RateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListActiveExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// UpsertExchangeRate validates and stores a fresh snapshot for the directed
// pair, deriving the reverse rate as the multiplicative inverse.
func (s *RateService) UpsertExchangeRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, source string) (*domain.ExchangeRate, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	// Both legs of the pair must exist in the registry.
	if _, err := s.currencyService.GetCurrencyByCode(ctx, fromCode); err != nil {
		return nil, err
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, toCode); err != nil {
		return nil, err
	}

	snapshot := domain.ExchangeRate{
		RateID:           uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             rate,
		ReverseRate:      decimal.NewFromInt(1).DivRound(rate, reverseRateScale),
		Source:           source,
		IsActive:         true,
		FetchedAt:        s.now(),
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate %s/%s: %w", fromCode, toCode, err)
	}

	return &snapshot, nil
}
