package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
)

// CheckoutUsecase はカートを注文に確定する処理です。
// カートは削除もリセットもしない。statusをcompletedへ倒して「アーカイブ」する。
// 次のカート操作が新しいactiveカートを遅延作成するので、1注文=1カートになる。
type CheckoutUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
}

func NewCheckoutUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
	}
}

type CheckoutInput struct {
	PaymentMethod string
	// JSONシリアライズ済みの配送先
	ShippingAddress string
}

type CheckoutOutput struct {
	Cart model.Cart `json:"cart"`
}

// Checkout はactiveカートをcompleted(waiting)へ確定する。
// 二重submitは条件付きUPDATEで片方だけ成功し、もう片方はconflictになる。
func (u *CheckoutUsecase) Checkout(ctx context.Context, sessionID string, userID *int64, in CheckoutInput) (CheckoutOutput, error) {
	if sessionID == "" {
		return CheckoutOutput{}, NewValidationError("no session")
	}

	if strings.TrimSpace(in.PaymentMethod) == "" {
		return CheckoutOutput{}, NewValidationError("payment method is required")
	}

	cart, err := u.cartRepo.GetOrCreateActiveBySessionID(ctx, sessionID, userID)
	if err != nil {
		return CheckoutOutput{}, NewStorageError("db error")
	}

	// 空カートは確定できない
	count, err := u.cartItemRepo.SumQuantityByCartID(ctx, cart.ID)
	if err != nil {
		return CheckoutOutput{}, NewStorageError("db error")
	}
	if count == 0 {
		return CheckoutOutput{}, NewValidationError("cart is empty")
	}

	finalized, err := u.cartRepo.Finalize(ctx, cart.ID, in.PaymentMethod, in.ShippingAddress, time.Now())
	if errors.Is(err, repo.ErrConflict) {
		// すでに別のリクエストが確定した
		return CheckoutOutput{}, NewConflictError("order already processed")
	}
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutOutput{}, NewNotFoundError("cart not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewStorageError("db error")
	}

	return CheckoutOutput{Cart: finalized}, nil
}
