package domain

import "github.com/shopspring/decimal"

// Quote is the result of a conversion calculation: how much of the destination
// currency a given source amount buys under the current rate and commission
// schedule. A Quote is immutable, never persisted on its own, and either
// discarded or used as the basis of an Order.
//
// Rate is the effective rate derived from the rounded ToAmount divided by
// FromAmount, not the raw provider rate: a client re-deriving ToAmount from
// the displayed rate reproduces the same rounded value.
type Quote struct {
	FromCurrency   Currency
	ToCurrency     Currency
	FromAmount     decimal.Decimal
	ToAmount       decimal.Decimal
	Commission     decimal.Decimal
	CommissionRate decimal.Decimal
	Rate           decimal.Decimal
	ExchangeRate   ExchangeRate // the snapshot the quote was computed from
}
