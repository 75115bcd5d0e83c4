package services

import (
	"context"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuoteSvcFacade is the quote engine boundary: a pure calculation with no
// side effects. Identical inputs against an unchanged rate snapshot always
// produce an identical quote.
type QuoteSvcFacade interface {
	Quote(ctx context.Context, fromCode, toCode string, fromAmount decimal.Decimal) (*domain.Quote, error)
}
