package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/repository/orders"
	"github.com/jonylazarte/ecommerce-page/internal/repository/products"
	"github.com/jonylazarte/ecommerce-page/internal/repository/users"
)

const recentOrderLimit = 5

type DashboardStats struct {
	TotalOrders   int64           `json:"total_orders"`
	TotalProducts int64           `json:"total_products"`
	TotalUsers    int64           `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	RecentOrders  []model.Order   `json:"recent_orders"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	orders   orders.Repository
	products products.Repository
	users    users.Repository
}

func NewDashboardService(o orders.Repository, p products.Repository, u users.Repository) DashboardService {
	return &dashboardService{orders: o, products: p, users: u}
}

// Stats aggregates the admin dashboard numbers. Revenue counts only orders
// whose payment completed.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.orders.CompletedRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.orders.Recent(ctx, recentOrderLimit); err != nil {
		return nil, err
	}
	return stats, nil
}
