package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olegmos-dev/crypto_exchange_app/internal/apperrors"
	"github.com/olegmos-dev/crypto_exchange_app/internal/core/domain"
	portsrepo "github.com/olegmos-dev/crypto_exchange_app/internal/core/ports/repositories"
	"github.com/olegmos-dev/crypto_exchange_app/internal/models"
	"github.com/olegmos-dev/crypto_exchange_app/internal/utils/mapping"
	"github.com/olegmos-dev/crypto_exchange_app/internal/utils/pagination"
)

const orderColumns = `order_id, order_number, from_currency_code, to_currency_code,
		from_amount, to_amount, rate, commission, commission_rate, status,
		client_name, client_phone, client_email, client_telegram,
		recipient_wallet, recipient_details, ip_address, user_agent,
		created_at, expires_at, completed_at`

// PgxOrderRepository implements the order store using pgxpool. All mutations
// are conditional single-statement updates, so two concurrent callers can
// never both win the same transition.
type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new PgxOrderRepository.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepository {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrderRepository = (*PgxOrderRepository)(nil)

// InsertOrderIfAbsent persists the order unless its number is already taken.
// The insert and the first status-history row commit in one transaction.
func (r *PgxOrderRepository) InsertOrderIfAbsent(ctx context.Context, order domain.Order) (*domain.Order, bool, error) {
	modelOrder := mapping.ToModelOrder(order)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO orders (order_number, from_currency_code, to_currency_code,
			from_amount, to_amount, rate, commission, commission_rate, status,
			client_name, client_phone, client_email, client_telegram,
			recipient_wallet, recipient_details, ip_address, user_agent,
			created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (order_number) DO NOTHING
		RETURNING order_id;
	`

	var orderID int64
	err = tx.QueryRow(ctx, query,
		modelOrder.OrderNumber,
		modelOrder.FromCurrencyCode,
		modelOrder.ToCurrencyCode,
		modelOrder.FromAmount,
		modelOrder.ToAmount,
		modelOrder.Rate,
		modelOrder.Commission,
		modelOrder.CommissionRate,
		modelOrder.Status,
		modelOrder.ClientName,
		modelOrder.ClientPhone,
		modelOrder.ClientEmail,
		modelOrder.ClientTelegram,
		modelOrder.RecipientWallet,
		modelOrder.RecipientDetails,
		modelOrder.IPAddress,
		modelOrder.UserAgent,
		modelOrder.CreatedAt,
		modelOrder.ExpiresAt,
	).Scan(&orderID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Number already taken; the caller decides whether to retry.
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to insert order %s: %w", modelOrder.OrderNumber, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO order_status_log (order_id, status, changed_at) VALUES ($1, $2, $3);`,
		orderID, modelOrder.Status, modelOrder.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to log initial status for order %s: %w", modelOrder.OrderNumber, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}

	stored := order
	stored.OrderID = orderID
	stored.StatusHistory = []domain.StatusChange{{Status: order.Status, ChangedAt: order.CreatedAt}}
	return &stored, true, nil
}

// FindOrderByNumber returns the order with its full status history.
func (r *PgxOrderRepository) FindOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1;`

	modelOrder, err := scanOrderRow(r.Pool.QueryRow(ctx, query, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrOrderNotFound, orderNumber)
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderNumber, err)
	}

	domainOrder := mapping.ToDomainOrder(modelOrder)
	history, err := r.loadStatusHistory(ctx, modelOrder.OrderID)
	if err != nil {
		return nil, err
	}
	domainOrder.StatusHistory = history
	return &domainOrder, nil
}

// ListOrders returns a page of orders, newest first, using a keyset cursor
// over (created_at, order_id).
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderListFilter) ([]domain.Order, string, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(*filter.Status))
		argNum++
	}

	if filter.PageToken != "" {
		cursorCreatedAt, cursorOrderID, err := decodeOrderPageToken(filter.PageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(" AND (created_at, order_id) < ($%d, $%d)", argNum, argNum+1)
		args = append(args, cursorCreatedAt, cursorOrderID)
		argNum += 2
	}

	// Fetch one extra row to know whether a next page exists.
	query += fmt.Sprintf(" ORDER BY created_at DESC, order_id DESC LIMIT $%d", argNum)
	args = append(args, filter.Limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	modelOrders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Order, error) {
		return scanOrderRow(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan orders: %w", err)
	}

	nextToken := ""
	if len(modelOrders) > filter.Limit {
		modelOrders = modelOrders[:filter.Limit]
		last := modelOrders[len(modelOrders)-1]
		nextToken = encodeOrderPageToken(last.CreatedAt, last.OrderID)
	}

	return mapping.ToDomainOrderSlice(modelOrders), nextToken, nil
}

// TransitionOrder applies the conditional status update. The WHERE clause
// carries the full precondition, so the check and the write are one atomic
// statement.
func (r *PgxOrderRepository) TransitionOrder(ctx context.Context, orderNumber string, t portsrepo.StatusTransition) (*domain.Order, bool, error) {
	sources := make([]string, len(t.Sources))
	for i, s := range t.Sources {
		sources[i] = string(s)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE orders
		SET status = $1,
			completed_at = CASE WHEN $1 = 'completed' THEN $2 ELSE completed_at END
		WHERE order_number = $3
			AND status = ANY($4)
			AND (NOT $5::boolean OR status <> 'pending' OR expires_at > $2)
		RETURNING ` + orderColumns + `;`

	modelOrder, err := scanOrderRow(tx.QueryRow(ctx, query,
		string(t.Target), t.At, orderNumber, sources, t.EnforceExpiry,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish "no such order" from "precondition not met".
			var exists bool
			if err := r.Pool.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1);`, orderNumber,
			).Scan(&exists); err != nil {
				return nil, false, fmt.Errorf("failed to check order %s: %w", orderNumber, err)
			}
			if !exists {
				return nil, false, fmt.Errorf("%w: %s", apperrors.ErrOrderNotFound, orderNumber)
			}
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to transition order %s to %s: %w", orderNumber, t.Target, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO order_status_log (order_id, status, changed_at) VALUES ($1, $2, $3);`,
		modelOrder.OrderID, string(t.Target), t.At,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to log status change for order %s: %w", orderNumber, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}

	domainOrder := mapping.ToDomainOrder(modelOrder)
	history, err := r.loadStatusHistory(ctx, modelOrder.OrderID)
	if err != nil {
		return nil, false, err
	}
	domainOrder.StatusHistory = history
	return &domainOrder, true, nil
}

// ExpireOverdue flips every overdue pending order to expired and appends the
// matching history rows, all in one statement.
func (r *PgxOrderRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		WITH swept AS (
			UPDATE orders
			SET status = 'expired'
			WHERE status = 'pending' AND expires_at <= $1
			RETURNING order_id
		)
		INSERT INTO order_status_log (order_id, status, changed_at)
		SELECT order_id, 'expired', $1 FROM swept;
	`

	tag, err := r.Pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountOrdersByStatus returns order counts grouped by status.
func (r *PgxOrderRepository) CountOrdersByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan order counts: %w", err)
		}
		counts[domain.OrderStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order counts: %w", err)
	}
	return counts, nil
}

// CountOrdersCreatedSince counts orders created at or after the instant.
func (r *PgxOrderRepository) CountOrdersCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= $1;`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders since %s: %w", since, err)
	}
	return count, nil
}

// loadStatusHistory returns the append-only status log for one order, oldest
// first.
func (r *PgxOrderRepository) loadStatusHistory(ctx context.Context, orderID int64) ([]domain.StatusChange, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT status, changed_at FROM order_status_log WHERE order_id = $1 ORDER BY changed_at, log_id;`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var history []domain.StatusChange
	for rows.Next() {
		var status string
		var changedAt time.Time
		if err := rows.Scan(&status, &changedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status history: %w", err)
		}
		history = append(history, domain.StatusChange{Status: domain.OrderStatus(status), ChangedAt: changedAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status history: %w", err)
	}
	return history, nil
}

// scanOrderRow scans one orders row in orderColumns order.
func scanOrderRow(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.OrderNumber,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.FromAmount,
		&m.ToAmount,
		&m.Rate,
		&m.Commission,
		&m.CommissionRate,
		&m.Status,
		&m.ClientName,
		&m.ClientPhone,
		&m.ClientEmail,
		&m.ClientTelegram,
		&m.RecipientWallet,
		&m.RecipientDetails,
		&m.IPAddress,
		&m.UserAgent,
		&m.CreatedAt,
		&m.ExpiresAt,
		&m.CompletedAt,
	)
	return m, err
}

func encodeOrderPageToken(createdAt time.Time, orderID int64) string {
	return pagination.EncodeMultiFieldToken(
		createdAt.UTC().Format(time.RFC3339Nano),
		strconv.FormatInt(orderID, 10),
	)
}

func decodeOrderPageToken(token string) (time.Time, int64, error) {
	fields, err := pagination.DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, 0, err
	}
	if len(fields) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (field count)")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	orderID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (order_id parse): %w", err)
	}
	return createdAt, orderID, nil
}
