package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderRepository is the durable ledger. payment_reference carries the
// primary key constraint, so draft idempotency and transition atomicity live
// in the storage layer rather than in application-level check-then-insert.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const orderColumns = `
payment_reference, local_order_id, status,
customer_name, customer_email, customer_phone, customer_address, customer_state,
items, total_minor_usd, total_minor_ngn, supplier_share_minor, profit_minor,
supplier_response, gateway_response, created_at, processed_at`

// CreateDraft inserts a pending order keyed by its payment reference. A
// duplicate reference is not an error: the first writer wins, the existing
// row is left untouched, and its local order id is returned.
func (r *OrderRepository) CreateDraft(ctx context.Context, order domain.Order) (string, error) {
	const stmt = `
INSERT INTO orders (
	payment_reference, local_order_id, status,
	customer_name, customer_email, customer_phone, customer_address, customer_state,
	items, total_minor_usd, total_minor_ngn, supplier_share_minor, profit_minor,
	gateway_response, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (payment_reference) DO NOTHING`

	tag, err := r.exec(ctx, stmt,
		order.PaymentReference,
		order.LocalOrderID,
		order.Status,
		order.Customer.Name,
		order.Customer.Email,
		order.Customer.Phone,
		order.Customer.Address,
		order.Customer.State,
		order.ItemsSnapshot,
		order.TotalMinorUSD,
		order.TotalMinorNGN,
		order.SupplierShare,
		order.Profit,
		order.GatewayResponse,
		order.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("%w: create draft: %v", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 1 {
		return order.LocalOrderID, nil
	}

	var existingID string
	err = r.queryRow(ctx,
		`SELECT local_order_id FROM orders WHERE payment_reference = $1`,
		order.PaymentReference,
	).Scan(&existingID)
	if err != nil {
		return "", fmt.Errorf("%w: read existing draft: %v", domain.ErrPersistence, err)
	}
	return existingID, nil
}

// MarkPaid moves a pending order to paid and stamps processed_at. The status
// guard in the UPDATE keeps terminal states immutable: re-marking an already
// paid or failed order is a no-op, while an unknown reference is an explicit
// error.
func (r *OrderRepository) MarkPaid(ctx context.Context, reference string, at time.Time) error {
	return r.markTerminal(ctx, reference, domain.OrderStatusPaid, at)
}

// MarkFailed moves a pending order to failed. Same guarantees as MarkPaid.
func (r *OrderRepository) MarkFailed(ctx context.Context, reference string, at time.Time) error {
	return r.markTerminal(ctx, reference, domain.OrderStatusFailed, at)
}

func (r *OrderRepository) markTerminal(ctx context.Context, reference string, status domain.OrderStatus, at time.Time) error {
	const stmt = `
UPDATE orders
SET status = $2, processed_at = $3
WHERE payment_reference = $1 AND status = 'pending'`

	tag, err := r.exec(ctx, stmt, reference, status, at)
	if err != nil {
		return fmt.Errorf("%w: mark %s: %v", domain.ErrPersistence, status, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.queryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE payment_reference = $1)`,
		reference,
	).Scan(&exists); err != nil {
		return fmt.Errorf("%w: check order: %v", domain.ErrPersistence, err)
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	// Already terminal; the transition stays wherever it first landed.
	return nil
}

// SetSupplierResponse records a downstream supplier acknowledgment on an
// existing order.
func (r *OrderRepository) SetSupplierResponse(ctx context.Context, reference string, response []byte) error {
	const stmt = `UPDATE orders SET supplier_response = $2 WHERE payment_reference = $1`

	tag, err := r.exec(ctx, stmt, reference, response)
	if err != nil {
		return fmt.Errorf("%w: set supplier response: %v", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// GetByReference fetches a single order.
func (r *OrderRepository) GetByReference(ctx context.Context, reference string) (domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_reference = $1`

	order, err := scanOrder(r.queryRow(ctx, query, reference))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("%w: get order: %v", domain.ErrPersistence, err)
	}
	return order, nil
}

// ListOrders returns all orders, newest first.
func (r *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan order: %v", domain.ErrPersistence, err)
		}
		orders = append(orders, order)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%w: iterate orders: %v", domain.ErrPersistence, rows.Err())
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(
		&o.PaymentReference,
		&o.LocalOrderID,
		&status,
		&o.Customer.Name,
		&o.Customer.Email,
		&o.Customer.Phone,
		&o.Customer.Address,
		&o.Customer.State,
		&o.ItemsSnapshot,
		&o.TotalMinorUSD,
		&o.TotalMinorNGN,
		&o.SupplierShare,
		&o.Profit,
		&o.SupplierResponse,
		&o.GatewayResponse,
		&o.CreatedAt,
		&o.ProcessedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (r *OrderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OrderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
