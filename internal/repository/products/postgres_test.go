package products

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonylazarte/ecommerce-page/internal/common"
)

func TestDecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE products`).
		WithArgs("p1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.DecrementStock(context.Background(), "p1", 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStockMissingProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE products`).
		WithArgs("ghost", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	err = repo.DecrementStock(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDDecodesImages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	columns := []string{"id", "name", "description", "price", "images",
		"category", "brand", "in_stock", "stock", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .* FROM products`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("p1", "Mouse", "", "29.90", `["a.jpg","b.jpg"]`, "peripherals", "", true, 5, now, now))

	repo := NewPostgresRepository(db)
	product, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, product.Images)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("29.90")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDBadImagesColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	columns := []string{"id", "name", "description", "price", "images",
		"category", "brand", "in_stock", "stock", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .* FROM products`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("p1", "Mouse", "", "29.90", `{broken`, "peripherals", "", true, 5, now, now))

	repo := NewPostgresRepository(db)
	product, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, product.Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}
