package services

import (
	"context"
	"fmt"

	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// effectiveRateScale is the precision of the effective rate reported on a
// quote. It is deep enough that re-multiplying by the source amount and
// rounding at the destination currency's decimals reproduces to_amount
// exactly.
const effectiveRateScale = 16

var oneHundred = decimal.NewFromInt(100)

// QuoteService is the quote engine: a pure conversion calculation over the
// currency registry and the current rate snapshot. No side effects, no
// persistence.
type QuoteService struct {
	currencyService portssvc.CurrencySvcFacade
	rateService     portssvc.RateSvcFacade
	commissionRate  decimal.Decimal // percent, applied to the destination-side amount
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(currencyService portssvc.CurrencySvcFacade, rateService portssvc.RateSvcFacade, commissionRatePercent decimal.Decimal) *QuoteService {
	return &QuoteService{
		currencyService: currencyService,
		rateService:     rateService,
		commissionRate:  commissionRatePercent,
	}
}

var _ portssvc.QuoteSvcFacade = (*QuoteService)(nil)

// Quote converts fromAmount of fromCode into toCode under the current rate
// and commission schedule.
//
// The commission is a percentage of the destination-side gross; the net
// amount and the commission are rounded half-to-even at the destination
// currency's decimals, and the reported rate is derived from the rounded
// values so a caller re-deriving to_amount from it lands on the same number.
func (s *QuoteService) Quote(ctx context.Context, fromCode, toCode string, fromAmount decimal.Decimal) (*domain.Quote, error) {
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrInvalidPair, fromCode, toCode)
	}
	if fromAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, fromAmount)
	}

	fromCurrency, err := s.currencyService.GetActiveCurrencyByCode(ctx, fromCode)
	if err != nil {
		return nil, err
	}
	toCurrency, err := s.currencyService.GetActiveCurrencyByCode(ctx, toCode)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateService.GetExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, err
	}

	if err := checkBounds(fromCurrency, rate, fromAmount); err != nil {
		return nil, err
	}

	gross := fromAmount.Mul(rate.Rate)
	commission := gross.Mul(s.commissionRate).Div(oneHundred)
	toAmount := gross.Sub(commission).RoundBank(toCurrency.Decimals)

	return &domain.Quote{
		FromCurrency:   *fromCurrency,
		ToCurrency:     *toCurrency,
		FromAmount:     fromAmount,
		ToAmount:       toAmount,
		Commission:     commission.RoundBank(toCurrency.Decimals),
		CommissionRate: s.commissionRate,
		Rate:           toAmount.DivRound(fromAmount, effectiveRateScale),
		ExchangeRate:   *rate,
	}, nil
}

// checkBounds enforces the effective minimum and maximum for the source
// amount: the tighter of the currency's own bounds and the pair-specific
// overrides on the rate snapshot.
func checkBounds(currency *domain.Currency, rate *domain.ExchangeRate, amount decimal.Decimal) error {
	minimum := currency.MinAmount
	if rate.MinAmount != nil && rate.MinAmount.GreaterThan(minimum) {
		minimum = *rate.MinAmount
	}
	if amount.LessThan(minimum) {
		return apperrors.NewBelowMinimumError(currency.Code, amount, minimum)
	}

	maximum := currency.MaxAmount
	if rate.MaxAmount != nil && (maximum == nil || rate.MaxAmount.LessThan(*maximum)) {
		maximum = rate.MaxAmount
	}
	if maximum != nil && amount.GreaterThan(*maximum) {
		return apperrors.NewAboveMaximumError(currency.Code, amount, *maximum)
	}

	return nil
}
