package repository

import (
	"context"

	"revorz/internal/domain/model"
)

// GET /api/products の絞り込み
type ProductListFilter struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]model.Product, int64, error)
	Create(ctx context.Context, p model.Product) (int64, error)
	Update(ctx context.Context, p model.Product) error
	DeleteByID(ctx context.Context, productID int64) error
}
