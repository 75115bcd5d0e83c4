package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Quoting errors. All of these are caller-recoverable conditions: they are
// returned as values and mapped to structured API responses, never panics.
var (
	// ErrInvalidPair indicates a quote was requested for identical from/to currencies.
	ErrInvalidPair = errors.New("from and to currency must differ")

	// ErrUnknownCurrency indicates a currency code that is not in the registry.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrInactiveCurrency indicates a registered currency that is disabled for trading.
	ErrInactiveCurrency = errors.New("currency is not active")

	// ErrInvalidAmount indicates a non-positive or non-finite source amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrBelowMinimum and ErrAboveMaximum indicate an amount outside the
	// effective bounds for the pair. They are usually wrapped in a BoundError
	// carrying the violated bound.
	ErrBelowMinimum = errors.New("amount is below the minimum")
	ErrAboveMaximum = errors.New("amount is above the maximum")

	// ErrNoRateAvailable indicates that neither the direct pair nor the
	// reverse pair has a usable rate, or the stored rate is too stale.
	ErrNoRateAvailable = errors.New("no exchange rate available")
)

// Order lifecycle errors.
var (
	// ErrOrderNotFound indicates a lookup for an unknown order number.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition indicates a status change along an edge that is not
	// part of the order state machine.
	ErrInvalidTransition = errors.New("illegal order status transition")

	// ErrOrderAlreadyFinalized indicates a transition attempt on an order that
	// has reached a terminal status (completed, cancelled or expired).
	ErrOrderAlreadyFinalized = errors.New("order already finalized")

	// ErrIdentityAllocationFailed indicates that a unique order number could
	// not be allocated within the configured number of attempts.
	ErrIdentityAllocationFailed = errors.New("failed to allocate a unique order number")
)

// FieldError reports a missing or malformed client-supplied field on order
// submission. It unwraps to ErrValidation so existing errors.Is checks keep
// working.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NewFieldError builds a FieldError for the given field.
func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// BoundError reports a quoted amount outside the effective minimum or maximum
// for a currency pair. It carries the violated bound so the caller can render
// an actionable message. Unwraps to ErrBelowMinimum or ErrAboveMaximum.
type BoundError struct {
	CurrencyCode string
	Amount       decimal.Decimal
	Bound        decimal.Decimal
	Above        bool
}

func (e *BoundError) Error() string {
	if e.Above {
		return fmt.Sprintf("amount %s %s is above the maximum of %s", e.Amount, e.CurrencyCode, e.Bound)
	}
	return fmt.Sprintf("amount %s %s is below the minimum of %s", e.Amount, e.CurrencyCode, e.Bound)
}

func (e *BoundError) Unwrap() error {
	if e.Above {
		return ErrAboveMaximum
	}
	return ErrBelowMinimum
}

// NewBelowMinimumError builds a BoundError for an amount under the effective minimum.
func NewBelowMinimumError(currencyCode string, amount, minimum decimal.Decimal) *BoundError {
	return &BoundError{CurrencyCode: currencyCode, Amount: amount, Bound: minimum}
}

// NewAboveMaximumError builds a BoundError for an amount over the effective maximum.
func NewAboveMaximumError(currencyCode string, amount, maximum decimal.Decimal) *BoundError {
	return &BoundError{CurrencyCode: currencyCode, Amount: amount, Bound: maximum, Above: true}
}
