package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portsrepo "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/services"
	"github.com/olegmos-dev/crypto_exchange_app/internal/dto"
	"github.com/olegmos-dev/crypto_exchange_app/internal/middleware"
)

const (
	// orderNumberAlphabet deliberately omits I, O and l to keep numbers
	// unambiguous when read aloud or retyped.
	orderNumberAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	orderNumberLength   = 10
	orderNumberPrefix   = "ORD-"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// OrderPolicy bundles the order lifecycle knobs. Zero values fall back to
// defaults: 30 minute TTL, 5 allocation attempts, time.Now as the clock and a
// nanoid-based order-number generator.
type OrderPolicy struct {
	TTL               time.Duration
	MaxNumberAttempts int
	Clock             func() time.Time
	NumberGenerator   func() string
}

// OrderService implements the order lifecycle: creation from a fresh
// server-side quote, status transitions along the state machine, lookup and
// expiry.
type OrderService struct {
	orderRepo    portsrepo.OrderRepository
	quoteService portssvc.QuoteSvcFacade

	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
	newNumber   func() string
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepository, quoteService portssvc.QuoteSvcFacade, policy OrderPolicy) (*OrderService, error) {
	if policy.TTL <= 0 {
		policy.TTL = 30 * time.Minute
	}
	if policy.MaxNumberAttempts <= 0 {
		policy.MaxNumberAttempts = 5
	}
	if policy.Clock == nil {
		policy.Clock = time.Now
	}
	if policy.NumberGenerator == nil {
		generate, err := nanoid.CustomASCII(orderNumberAlphabet, orderNumberLength)
		if err != nil {
			return nil, fmt.Errorf("failed to build order number generator: %w", err)
		}
		policy.NumberGenerator = func() string { return orderNumberPrefix + generate() }
	}

	return &OrderService{
		orderRepo:    orderRepo,
		quoteService: quoteService,
		ttl:          policy.TTL,
		maxAttempts:  policy.MaxNumberAttempts,
		now:          policy.Clock,
		newNumber:    policy.NumberGenerator,
	}, nil
}

var _ portssvc.OrderSvcFacade = (*OrderService)(nil)

// CreateOrder validates the submission, re-runs the quote server-side (the
// client-displayed quote is never trusted) and persists a new pending order.
// The order-number allocation retries on collision, bounded by the policy.
func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, meta dto.RequestMeta) (*domain.Order, error) {
	if err := validateClientFields(req); err != nil {
		return nil, err
	}

	quote, err := s.quoteService.Quote(ctx, req.FromCurrency, req.ToCurrency, req.FromAmount)
	if err != nil {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.now()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		order := domain.Order{
			OrderNumber:      s.newNumber(),
			FromCurrencyCode: quote.FromCurrency.Code,
			ToCurrencyCode:   quote.ToCurrency.Code,
			FromAmount:       quote.FromAmount,
			ToAmount:         quote.ToAmount,
			Rate:             quote.Rate,
			Commission:       quote.Commission,
			CommissionRate:   quote.CommissionRate,
			Status:           domain.StatusPending,
			ClientName:       strings.TrimSpace(req.ClientName),
			ClientPhone:      strings.TrimSpace(req.ClientPhone),
			ClientEmail:      strings.TrimSpace(req.ClientEmail),
			ClientTelegram:   strings.TrimSpace(req.ClientTelegram),
			RecipientWallet:  strings.TrimSpace(req.RecipientWallet),
			RecipientDetails: req.RecipientDetails,
			IPAddress:        meta.IPAddress,
			UserAgent:        meta.UserAgent,
			CreatedAt:        now,
			ExpiresAt:        now.Add(s.ttl),
		}

		stored, inserted, err := s.orderRepo.InsertOrderIfAbsent(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("failed to persist order: %w", err)
		}
		if inserted {
			logger.Info("Order created",
				slog.String("order_number", stored.OrderNumber),
				slog.Int64("order_id", stored.OrderID),
				slog.String("from", stored.FromCurrencyCode),
				slog.String("to", stored.ToCurrencyCode),
			)
			return stored, nil
		}

		logger.Warn("Order number collision, retrying",
			slog.String("order_number", order.OrderNumber),
			slog.Int("attempt", attempt),
		)
	}

	return nil, fmt.Errorf("%w after %d attempts", apperrors.ErrIdentityAllocationFailed, s.maxAttempts)
}

// GetOrderByNumber returns the order, surfacing an overdue pending order as
// expired before it is handed back.
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !order.IsExpiredAt(s.now()) {
		return order, nil
	}

	expired, applied, err := s.orderRepo.TransitionOrder(ctx, orderNumber, portsrepo.StatusTransition{
		Target:  domain.StatusExpired,
		Sources: []domain.OrderStatus{domain.StatusPending},
		At:      s.now(),
	})
	if err != nil {
		return nil, err
	}
	if applied {
		return expired, nil
	}
	// Lost a race against a concurrent transition; the committed state wins.
	return s.orderRepo.FindOrderByNumber(ctx, orderNumber)
}

// TransitionOrder moves the order along one edge of the state machine. The
// status check and, for non-expiry targets, the deadline check are committed
// atomically by the repository so a confirm racing with expiration cannot
// resurrect a dead order.
func (s *OrderService) TransitionOrder(ctx context.Context, orderNumber string, target domain.OrderStatus) (*domain.Order, error) {
	sources := domain.TransitionSources(target)
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: nothing transitions into %s", apperrors.ErrInvalidTransition, target)
	}

	// Two attempts: the second absorbs a benign race with a concurrent
	// transition whose outcome still permits this one.
	for attempt := 0; attempt < 2; attempt++ {
		updated, applied, err := s.orderRepo.TransitionOrder(ctx, orderNumber, portsrepo.StatusTransition{
			Target:        target,
			Sources:       sources,
			At:            s.now(),
			EnforceExpiry: target != domain.StatusExpired,
		})
		if err != nil {
			return nil, err
		}
		if applied {
			return updated, nil
		}

		current, err := s.orderRepo.FindOrderByNumber(ctx, orderNumber)
		if err != nil {
			return nil, err
		}
		if current.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: order %s is %s", apperrors.ErrOrderAlreadyFinalized, orderNumber, current.Status)
		}
		if current.IsExpiredAt(s.now()) {
			// Surface the expiry before rejecting the caller's transition.
			if _, _, err := s.orderRepo.TransitionOrder(ctx, orderNumber, portsrepo.StatusTransition{
				Target:  domain.StatusExpired,
				Sources: []domain.OrderStatus{domain.StatusPending},
				At:      s.now(),
			}); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: order %s has expired", apperrors.ErrOrderAlreadyFinalized, orderNumber)
		}
		if !current.Status.CanTransitionTo(target) {
			return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, current.Status, target)
		}
	}

	return nil, fmt.Errorf("%w: concurrent update on order %s", apperrors.ErrInvalidTransition, orderNumber)
}

// ListOrders returns a page of orders for the admin surface.
func (s *OrderService) ListOrders(ctx context.Context, req dto.ListOrdersRequest) ([]domain.Order, string, error) {
	filter := portsrepo.OrderListFilter{
		Limit:     req.Limit,
		PageToken: req.PageToken,
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if req.Status != "" {
		status, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Status = &status
	}

	orders, nextToken, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nextToken, nil
}

// ExpireOverdue sweeps all pending orders past their deadline.
func (s *OrderService) ExpireOverdue(ctx context.Context) (int64, error) {
	count, err := s.orderRepo.ExpireOverdue(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue orders: %w", err)
	}
	if count > 0 {
		middleware.GetLoggerFromCtx(ctx).Info("Marked orders as expired", slog.Int64("count", count))
	}
	return count, nil
}

// Statistics aggregates order counts for the admin dashboard.
func (s *OrderService) Statistics(ctx context.Context) (*domain.OrderStatistics, error) {
	byStatus, err := s.orderRepo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	now := s.now()
	today, err := s.orderRepo.CountOrdersCreatedSince(ctx, now.Truncate(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}
	week, err := s.orderRepo.CountOrdersCreatedSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to count this week's orders: %w", err)
	}

	return &domain.OrderStatistics{
		TotalOrders: total,
		ByStatus:    byStatus,
		TodayOrders: today,
		WeekOrders:  week,
	}, nil
}

// validateClientFields checks the client contact and payout fields. Phone
// gets a length and charset check only, no semantic validation.
func validateClientFields(req dto.CreateOrderRequest) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return apperrors.NewFieldError("client_name", "must not be empty")
	}

	phone := strings.TrimSpace(req.ClientPhone)
	if phone == "" {
		return apperrors.NewFieldError("client_phone", "must not be empty")
	}
	if len(phone) < 7 || len(phone) > 32 {
		return apperrors.NewFieldError("client_phone", "must be between 7 and 32 characters")
	}
	for _, r := range phone {
		if (r < '0' || r > '9') && !strings.ContainsRune("+-() ", r) {
			return apperrors.NewFieldError("client_phone", "may only contain digits, spaces and +-()")
		}
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email == "" {
		return apperrors.NewFieldError("client_email", "must not be empty")
	}
	if !emailPattern.MatchString(email) {
		return apperrors.NewFieldError("client_email", "must be a valid email address")
	}

	if strings.TrimSpace(req.RecipientWallet) == "" {
		return apperrors.NewFieldError("recipient_wallet", "must not be empty")
	}

	return nil
}
