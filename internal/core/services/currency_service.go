package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portsrepo "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
)

// CurrencyService provides business logic for the currency registry.
type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepository
	now          func() time.Time
}

// NewCurrencyService creates a new CurrencyService. A nil clock defaults to
// time.Now.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository, clock func() time.Time) *CurrencyService {
	if clock == nil {
		clock = time.Now
	}
	return &CurrencyService{currencyRepo: currencyRepo, now: clock}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// UpsertCurrency creates a currency or updates its mutable attributes
// (bounds, active flag, display data). The administrative boundary of the
// registry.
func (s *CurrencyService) UpsertCurrency(ctx context.Context, req dto.UpsertCurrencyRequest) (*domain.Currency, error) {
	if req.MinAmount.IsNegative() {
		return nil, fmt.Errorf("%w: min_amount must not be negative", apperrors.ErrValidation)
	}
	if req.MaxAmount != nil && req.MaxAmount.LessThan(req.MinAmount) {
		return nil, fmt.Errorf("%w: max_amount must not be below min_amount", apperrors.ErrValidation)
	}
	if req.Decimals < 0 {
		return nil, fmt.Errorf("%w: decimals must not be negative", apperrors.ErrValidation)
	}

	now := s.now()
	currency := domain.Currency{
		Code:      req.Code,
		Name:      req.Name,
		Symbol:    req.Symbol,
		Network:   req.Network,
		IconURL:   req.IconURL,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		Decimals:  req.Decimals,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
	}

	// Preserve the original creation timestamp on update.
	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up currency %s: %w", req.Code, err)
	}
	if existing != nil {
		currency.CreatedAt = existing.CreatedAt
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to save currency %s: %w", req.Code, err)
	}

	return &currency, nil
}

// GetCurrencyByCode resolves a currency regardless of its active flag.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, code)
		}
		return nil, fmt.Errorf("failed to get currency %s: %w", code, err)
	}
	return currency, nil
}

// GetActiveCurrencyByCode resolves a currency and rejects inactive ones.
func (s *CurrencyService) GetActiveCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInactiveCurrency, code)
	}
	return currency, nil
}

// ListActiveCurrencies returns all active currencies ordered by code.
func (s *CurrencyService) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListActiveCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
