package products

import (
	"context"

	"github.com/jonylazarte/ecommerce-page/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, category string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) error
	Count(ctx context.Context) (int64, error)
}
