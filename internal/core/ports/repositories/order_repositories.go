package repositories

import (
	"context"
	"time"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
)

// OrderListFilter narrows and pages an order listing. PageToken is an opaque
// keyset cursor produced by a previous call.
type OrderListFilter struct {
	Status    *domain.OrderStatus
	Limit     int
	PageToken string
}

// StatusTransition describes an atomic conditional status update. The update
// only commits when the order's current status is one of Sources, and, when
// EnforceExpiry is set, when the order has not yet passed its expiry deadline
// at instant At. This is what lets a confirm racing with expiration lose
// cleanly instead of resurrecting a dead order.
type StatusTransition struct {
	Target        domain.OrderStatus
	Sources       []domain.OrderStatus
	At            time.Time
	EnforceExpiry bool
}

// OrderRepository defines persistence operations for orders. All operations
// are atomic at single-order granularity.
type OrderRepository interface {
	// InsertOrderIfAbsent persists the order unless its order number is
	// already taken. Returns the stored order (with its allocated numeric id)
	// and true on success, or (nil, false, nil) on an order-number collision.
	InsertOrderIfAbsent(ctx context.Context, order domain.Order) (*domain.Order, bool, error)

	// FindOrderByNumber returns the order with its status history, or
	// apperrors.ErrOrderNotFound.
	FindOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)

	// ListOrders returns a page of orders, newest first, plus the token for
	// the next page ("" when exhausted).
	ListOrders(ctx context.Context, filter OrderListFilter) ([]domain.Order, string, error)

	// TransitionOrder applies t. Returns the updated order and true when the
	// conditional update committed; (nil, false, nil) when the order exists
	// but its current state did not satisfy the preconditions; an error
	// wrapping apperrors.ErrOrderNotFound when there is no such order.
	TransitionOrder(ctx context.Context, orderNumber string, t StatusTransition) (*domain.Order, bool, error)

	// ExpireOverdue flips every pending order whose deadline has passed to
	// expired, returning how many rows were affected.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)

	// CountOrdersByStatus returns order counts grouped by status.
	CountOrdersByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)

	// CountOrdersCreatedSince counts orders created at or after the instant.
	CountOrdersCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
