package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/repository/orders"
	"github.com/jonylazarte/ecommerce-page/internal/repository/products"
)

const (
	maxQuantity = 100
)

// maxPrice is the exclusive upper bound on a unit price.
var maxPrice = decimal.NewFromInt(1_000_000)

type CartLine struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type CreateOrderInput struct {
	Items           []CartLine          `json:"items" binding:"required"`
	ShippingAddress string              `json:"shipping_address" binding:"required"`
	BillingAddress  string              `json:"billing_address" binding:"required"`
	PaymentMethod   model.PaymentMethod `json:"payment_method" binding:"required"`
}

type OrderService interface {
	Create(ctx context.Context, userID string, input CreateOrderInput) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	// MarkPaymentStatus applies a guarded payment-status transition and
	// reports whether it actually changed anything. An order already
	// COMPLETED is never transitioned again.
	MarkPaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus, intentID string) (bool, error)
	// AdminUpdate sets order and/or payment status without the webhook
	// guard; the admin surface is last-write-wins.
	AdminUpdate(ctx context.Context, orderID string, status *model.OrderStatus, paymentStatus *model.PaymentStatus) (*model.Order, error)
}

type orderService struct {
	orders   orders.Repository
	products products.Repository
}

func NewOrderService(o orders.Repository, p products.Repository) OrderService {
	return &orderService{orders: o, products: p}
}

// Create validates every cart line against the live catalog before the first
// write: the product must exist and be in stock with enough units, quantities
// must be within [1, 100] and the live unit price within (0, 1,000,000). The
// total is the sum of live price times quantity with prices snapshotted into
// the order items. The order insert and the per-line stock decrements are
// separate statements; a decrement that fails after the order is persisted is
// logged and dropped.
func (s *orderService) Create(ctx context.Context, userID string, input CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, common.ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity < 1 || line.Quantity > maxQuantity {
			return nil, common.ErrQuantityRange
		}

		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.InStock || product.Stock < line.Quantity {
			return nil, common.ErrOutOfStock
		}
		if product.Price.Sign() <= 0 || product.Price.GreaterThanOrEqual(maxPrice) {
			return nil, common.ErrPriceRange
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, model.OrderItem{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
	}

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Total:           total,
		Status:          model.OrderPending,
		PaymentStatus:   model.PaymentPending,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
	}
	order, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := s.orders.AddItem(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	order.Items = items

	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("order %s: stock decrement for product %s failed: %v", order.ID, item.ProductID, err)
		}
	}

	return order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *orderService) AdminUpdate(ctx context.Context, orderID string, status *model.OrderStatus, paymentStatus *model.PaymentStatus) (*model.Order, error) {
	if status != nil {
		switch *status {
		case model.OrderPending, model.OrderProcessing, model.OrderShipped,
			model.OrderDelivered, model.OrderCancelled:
		default:
			return nil, common.ErrInvalidStatus
		}
		if err := s.orders.UpdateStatus(ctx, orderID, *status); err != nil {
			return nil, err
		}
	}
	if paymentStatus != nil {
		switch *paymentStatus {
		case model.PaymentPending, model.PaymentCompleted,
			model.PaymentFailed, model.PaymentRefunded:
		default:
			return nil, common.ErrInvalidStatus
		}
		if err := s.orders.UpdatePaymentStatus(ctx, orderID, *paymentStatus, ""); err != nil {
			return nil, err
		}
	}
	return s.orders.GetByID(ctx, orderID)
}

func (s *orderService) MarkPaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus, intentID string) (bool, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if order.PaymentStatus == model.PaymentCompleted {
		return false, nil
	}
	if err := s.orders.UpdatePaymentStatus(ctx, orderID, status, intentID); err != nil {
		return false, err
	}
	return true, nil
}
