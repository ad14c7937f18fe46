package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/example/marketplace/internal/domain/order"
)

// PostgresOrderRepository implements order.Repository over PostgreSQL.
// Orders span two tables: the order row and its frozen line items.
type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, user_id, street, city, state, zip_code, country,
	payment_method, payment_status, items_price, shipping_price, tax_price,
	total_price, status, delivered_at, created_at, updated_at`

func (r *PostgresOrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		o.ID, o.UserID,
		o.ShippingAddress.Street, o.ShippingAddress.City, o.ShippingAddress.State,
		o.ShippingAddress.ZipCode, o.ShippingAddress.Country,
		o.PaymentMethod, o.PaymentStatus,
		o.ItemsPrice, o.ShippingPrice, o.TaxPrice, o.TotalPrice,
		o.Status, o.DeliveredAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, product_id, name, image, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.ID, i, item.ProductID, item.Name, item.Image, item.Price, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *PostgresOrderRepository) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status, deliveredAt *time.Time) error {
	// Conditional write: of two concurrent cancellations only one can win
	// this UPDATE, which keeps the cancellation restock single-shot.
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, delivered_at = COALESCE($3, delivered_at), updated_at = NOW()
		WHERE id = $1 AND status <> $4`,
		id, status, deliveredAt, order.StatusCancelled,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		var current order.Status
		err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return order.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("query order status: %w", err)
		}
		return order.ErrOrderCancelled
	}
	return nil
}

func (r *PostgresOrderRepository) list(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}
	return orders, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]order.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name, image, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`,
		pq.Array(orderIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]order.Item)
	for rows.Next() {
		var orderID string
		var item order.Item
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Image, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}
	return items, rows.Err()
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.UserID,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.ZipCode, &o.ShippingAddress.Country,
		&o.PaymentMethod, &o.PaymentStatus,
		&o.ItemsPrice, &o.ShippingPrice, &o.TaxPrice, &o.TotalPrice,
		&o.Status, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
