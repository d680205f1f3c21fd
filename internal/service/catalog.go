package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/repository/products"
)

// ProductUpdate carries the fields an admin may change; nil fields are left
// untouched.
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Images      []string         `json:"images"`
	Category    *string          `json:"category"`
	Brand       *string          `json:"brand"`
	InStock     *bool            `json:"in_stock"`
	Stock       *int             `json:"stock"`
}

// ImportResult summarizes a bulk Excel import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type CatalogService interface {
	List(ctx context.Context, category string) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	ImportExcel(ctx context.Context, file io.Reader) (*ImportResult, error)
}

type catalogService struct {
	products products.Repository
}

func NewCatalogService(p products.Repository) CatalogService {
	return &catalogService{products: p}
}

func (s *catalogService) List(ctx context.Context, category string) ([]model.Product, error) {
	return s.products.List(ctx, category)
}

func (s *catalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *catalogService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.ID = uuid.NewString()
	if product.Images == nil {
		product.Images = []string{}
	}
	product.InStock = product.Stock > 0
	return s.products.Create(ctx, product)
}

func (s *catalogService) Update(ctx context.Context, id string, update ProductUpdate) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Images != nil {
		product.Images = update.Images
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Brand != nil {
		product.Brand = *update.Brand
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
		product.InStock = *update.Stock > 0
	}
	if update.InStock != nil {
		product.InStock = *update.InStock
	}

	return s.products.Update(ctx, product)
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// ImportExcel reads a "Products" sheet with the columns
// name, description, price, category, brand, stock. Rows with a malformed
// price or stock are skipped and counted rather than failing the import.
func (s *catalogService) ImportExcel(ctx context.Context, file io.Reader) (*ImportResult, error) {
	xlsx, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("invalid Excel file: %w", err)
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 6 {
			result.Skipped++
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil || price.Sign() <= 0 {
			result.Skipped++
			continue
		}
		stock, err := strconv.Atoi(strings.TrimSpace(row[5]))
		if err != nil || stock < 0 {
			result.Skipped++
			continue
		}

		product := &model.Product{
			Name:        strings.TrimSpace(row[0]),
			Description: strings.TrimSpace(row[1]),
			Price:       price,
			Category:    strings.TrimSpace(row[3]),
			Brand:       strings.TrimSpace(row[4]),
			Stock:       stock,
		}
		if product.Name == "" {
			result.Skipped++
			continue
		}
		if _, err := s.Create(ctx, product); err != nil {
			return nil, err
		}
		result.Imported++
	}
	return result, nil
}
