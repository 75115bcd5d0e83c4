package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an exchange order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
	StatusExpired    OrderStatus = "expired"
)

// validTransitions encodes the order state machine:
// pending → confirmed → processing → completed is the happy path,
// cancellation is allowed from any non-terminal state, and only pending
// orders can expire.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusCompleted, StatusCancelled, StatusExpired:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// IsTerminal reports whether no further transition is permitted out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo reports whether target is reachable from s along a single
// edge of the state machine.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionSources returns every status from which target is directly
// reachable. Used to build atomic conditional updates in the repository.
func TransitionSources(target OrderStatus) []OrderStatus {
	var sources []OrderStatus
	for from, targets := range validTransitions {
		for _, t := range targets {
			if t == target {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// StatusChange is one entry of an order's append-only status history.
type StatusChange struct {
	Status    OrderStatus
	ChangedAt time.Time
}

// Order is a persisted, identity-bearing record of an accepted exchange
// request. OrderID is the internal numeric identity; OrderNumber is the
// externally shareable, URL-safe key and is stable for the order's lifetime.
// Orders are created atomically from a validated quote and mutated only
// through status transitions; they are never deleted.
type Order struct {
	OrderID          int64
	OrderNumber      string
	FromCurrencyCode string
	ToCurrencyCode   string
	FromAmount       decimal.Decimal
	ToAmount         decimal.Decimal
	Rate             decimal.Decimal
	Commission       decimal.Decimal
	CommissionRate   decimal.Decimal
	Status           OrderStatus

	ClientName     string
	ClientPhone    string
	ClientEmail    string
	ClientTelegram string

	RecipientWallet  string
	RecipientDetails string

	IPAddress string
	UserAgent string

	CreatedAt   time.Time
	ExpiresAt   time.Time
	CompletedAt *time.Time

	StatusHistory []StatusChange
}

// IsExpiredAt reports whether a still-pending order has outlived its TTL at
// the given instant.
func (o *Order) IsExpiredAt(now time.Time) bool {
	return o.Status == StatusPending && now.After(o.ExpiresAt)
}
