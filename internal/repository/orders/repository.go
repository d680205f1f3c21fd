package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jonylazarte/ecommerce-page/internal/model"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	AddItem(ctx context.Context, item *model.OrderItem) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus, intentID string) error
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	Count(ctx context.Context) (int64, error)
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
	Recent(ctx context.Context, limit int) ([]model.Order, error)
}
