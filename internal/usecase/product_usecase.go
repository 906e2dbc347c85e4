package usecase

import (
	"context"
	"errors"
	"strings"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
)

// ProductUsecase は商品カタログの業務ロジックです。
// 公開側は読み取りのみ。作成/更新/削除は管理者のみ（handlerでガード）。
type ProductUsecase struct {
	productRepo repo.ProductRepository
}

func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	Image       string
	Colors      string
	Sizes       string
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewValidationError("invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewValidationError("invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewValidationError("invalid q")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewValidationError("invalid min_price")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewValidationError("invalid max_price")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewValidationError("invalid price range")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListFilter{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        in.Q,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewStorageError("db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return model.Product{}, NewStorageError("db error")
	}
	return p, nil
}

// 商品作成（管理者）
func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	id, err := u.productRepo.Create(ctx, model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Colors:      in.Colors,
		Sizes:       in.Sizes,
	})
	if err != nil {
		return model.Product{}, NewStorageError("db error")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, NewStorageError("db error")
	}
	return p, nil
}

// 商品更新（管理者）
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in ProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("invalid id")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Colors:      in.Colors,
		Sizes:       in.Sizes,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return model.Product{}, NewStorageError("db error")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewStorageError("db error")
	}
	return p, nil
}

// 商品削除（管理者）
func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewValidationError("invalid id")
	}

	err := u.productRepo.DeleteByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("product not found")
	}
	if err != nil {
		return NewStorageError("db error")
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return NewValidationError("description is required")
	}
	if in.Price <= 0 {
		return NewValidationError("invalid price")
	}
	return nil
}
