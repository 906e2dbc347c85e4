package repository

import (
	"context"

	"revorz/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, itemID int64) (model.CartItem, error)
	FindByVariant(ctx context.Context, cartID int64, productID int64, color string, size string) (model.CartItem, error)

	// 同一の(product, color, size)は数量加算、無ければ新規行。
	// 同時追加でも行が重複しないこと（ON CONFLICTで1文実行）。
	UpsertByVariant(ctx context.Context, cartID int64, productID int64, color string, size string, addQty int64, unitPrice int64) error

	UpdateQuantity(ctx context.Context, itemID int64, qty int64) error
	DeleteByID(ctx context.Context, itemID int64) error
	DeleteByCartID(ctx context.Context, cartID int64) error

	// カート内の数量合計（明細ゼロなら0）
	SumQuantityByCartID(ctx context.Context, cartID int64) (int64, error)

	// itemがそのsessionのactiveカートに属しているか
	IsOwnedBySession(ctx context.Context, itemID int64, sessionID string) (bool, error)
}
