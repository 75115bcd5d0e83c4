package services

import (
	"context"

	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
)

// OrderSvcFacade exposes the order lifecycle manager.
type OrderSvcFacade interface {
	// CreateOrder validates client fields, re-quotes the pair server-side and
	// persists a new pending order with a freshly allocated identity.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, meta dto.RequestMeta) (*domain.Order, error)

	// GetOrderByNumber returns the order, surfacing overdue pending orders as
	// expired.
	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)

	// ListOrders returns a page of orders plus the next-page token.
	ListOrders(ctx context.Context, req dto.ListOrdersRequest) ([]domain.Order, string, error)

	// TransitionOrder moves the order along one edge of the state machine.
	TransitionOrder(ctx context.Context, orderNumber string, target domain.OrderStatus) (*domain.Order, error)

	// ExpireOverdue sweeps pending orders past their deadline.
	ExpireOverdue(ctx context.Context) (int64, error)

	// Statistics aggregates order counts for the admin dashboard.
	Statistics(ctx context.Context) (*domain.OrderStatistics, error)
}
