package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

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

const productColumns = `id, name, description, price, images, category, brand, in_stock, stock, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	query :=
		`INSERT INTO products (id, name, description, price, images, category, brand, in_stock, stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		encodeImages(product.Images), product.Category, product.Brand,
		product.InStock, product.Stock).
		Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return product, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return product, nil
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *product)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	query :=
		`UPDATE products
		 SET name = $2, description = $3, price = $4, images = $5, category = $6,
		     brand = $7, in_stock = $8, stock = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		encodeImages(product.Images), product.Category, product.Brand,
		product.InStock, product.Stock).
		Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return product, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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

// DecrementStock issues a single stock update and clears in_stock when the
// counter reaches zero. Callers pre-check availability; there is no lower
// bound enforced here.
func (r *PostgresRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	query :=
		`UPDATE products
		 SET stock = stock - $2, in_stock = (stock - $2) > 0, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, quantity)
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
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	product := &model.Product{}
	var images string
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&images, &product.Category, &product.Brand, &product.InStock, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	product.Images = decodeImages(product.ID, images)
	return product, nil
}

func encodeImages(images []string) string {
	if images == nil {
		images = []string{}
	}
	b, _ := json.Marshal(images)
	return string(b)
}

// decodeImages tolerates malformed rows: a bad JSON list degrades to an empty
// list instead of failing the whole read.
func decodeImages(productID, raw string) []string {
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		log.Printf("product %s: invalid images column, ignoring: %v", productID, err)
		return []string{}
	}
	if images == nil {
		return []string{}
	}
	return images
}
