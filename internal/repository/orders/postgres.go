package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/dbx"
	"github.com/jonylazarte/ecommerce-page/internal/model"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	query :=
		`INSERT INTO orders (id, user_id, total, status, payment_status, payment_method,
		                     shipping_address, billing_address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		order.ID, order.UserID, order.Total, order.Status, order.PaymentStatus,
		order.PaymentMethod, order.ShippingAddress, order.BillingAddress).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return order, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, item *model.OrderItem) error {
	query :=
		`INSERT INTO order_items (id, order_id, product_id, quantity, price)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const orderColumns = `id, user_id, total, status, payment_status, payment_method,
	shipping_address, billing_address, payment_intent_id, created_at, updated_at`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order := &model.Order{}
	err := scanOrder(r.db.QueryRowContext(ctx, query, id), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query :=
		`SELECT o.id, o.user_id, u.name, o.total, o.status, o.payment_status, o.payment_method,
		        o.shipping_address, o.billing_address, o.payment_intent_id, o.created_at, o.updated_at
		 FROM orders o
		 JOIN users u ON u.id = o.user_id
		 ORDER BY o.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.UserName, &o.Total, &o.Status,
			&o.PaymentStatus, &o.PaymentMethod, &o.ShippingAddress,
			&o.BillingAddress, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus, intentID string) error {
	query :=
		`UPDATE orders
		 SET payment_status = $2,
		     payment_intent_id = CASE WHEN $3 = '' THEN payment_intent_id ELSE $3 END,
		     updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, status, intentID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(sum(total), 0) FROM orders WHERE payment_status = 'COMPLETED'`

	var revenue decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("db error: %w", err)
	}
	return revenue, nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	query :=
		`SELECT o.id, o.user_id, u.name, o.total, o.status, o.payment_status, o.payment_method,
		        o.shipping_address, o.billing_address, o.payment_intent_id, o.created_at, o.updated_at
		 FROM orders o
		 JOIN users u ON u.id = o.user_id
		 ORDER BY o.created_at DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.UserName, &o.Total, &o.Status,
			&o.PaymentStatus, &o.PaymentMethod, &o.ShippingAddress,
			&o.BillingAddress, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) loadItems(ctx context.Context, order *model.Order) error {
	query :=
		`SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price
		 FROM order_items i
		 JOIN products p ON p.id = i.product_id
		 WHERE i.order_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.Price)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, o *model.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.PaymentStatus,
		&o.PaymentMethod, &o.ShippingAddress, &o.BillingAddress,
		&o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt)
}

func collectOrders(rows *sql.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
