package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
)

// AdminOrderUsecase は管理者向けの注文（completedカート）操作です。
type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	cartRepo  repo.CartRepository
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	auditRepo repo.AuditLogRepository,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, cartRepo: cartRepo, auditRepo: auditRepo}
}

type OrderListInput struct {
	OrderStatus string
	Query       string
}

type OrderDetail struct {
	Cart  model.Cart     `json:"cart"`
	Items []CartItemView `json:"items"`
	Total int64          `json:"total"`
}

type UpdateOrderStatusInput struct {
	CartID    int64
	NewStatus string
}

// 注文一覧（レビューステータス絞り込み＋ユーザー名/ID検索）
func (u *AdminOrderUsecase) List(ctx context.Context, in OrderListInput) ([]model.Cart, error) {
	status := strings.TrimSpace(in.OrderStatus)
	if status != "" {
		switch model.OrderStatus(status) {
		case model.OrderStatusWaiting, model.OrderStatusApproved, model.OrderStatusRejected:
			// OK
		default:
			return []model.Cart{}, NewValidationError("invalid status")
		}
	}

	carts, err := u.cartRepo.ListCompleted(ctx, repo.OrderListFilter{
		OrderStatus: status,
		Query:       strings.TrimSpace(in.Query),
	})
	if err != nil {
		return []model.Cart{}, NewStorageError("db error")
	}
	return carts, nil
}

// 注文詳細（明細＋商品表示情報）
func (u *AdminOrderUsecase) GetDetail(ctx context.Context, cartID int64) (OrderDetail, error) {
	if cartID <= 0 {
		return OrderDetail{}, NewValidationError("invalid id")
	}

	var out OrderDetail

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByID(ctx, cartID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order not found")
		}
		if err != nil {
			return NewStorageError("db error")
		}

		// activeカートは注文ではない
		if cart.Status != model.CartStatusCompleted {
			return NewNotFoundError("order not found")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewStorageError("db error")
		}

		viewItems := make([]CartItemView, 0, len(items))
		var total int64 = 0
		for _, it := range items {
			v := CartItemView{
				ID:        it.ID,
				ProductID: it.ProductID,
				Price:     it.UnitPrice,
				Quantity:  it.Quantity,
				Color:     it.Color,
				Size:      it.Size,
			}
			if p, err := r.Products().FindByID(ctx, it.ProductID); err == nil {
				v.Name = p.Name
				v.Image = p.Image
			}
			viewItems = append(viewItems, v)
			total += it.UnitPrice * it.Quantity
		}

		out = OrderDetail{Cart: cart, Items: viewItems, Total: total}
		return nil
	})

	if err != nil {
		return OrderDetail{}, err
	}
	return out, nil
}

// レビューステータス更新（waiting/approved/rejectedのみ）。監査ログを残す。
func (u *AdminOrderUsecase) UpdateOrderStatus(ctx context.Context, actorAdminUserID int64, in UpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewValidationError("unauthorized")
	}
	if in.CartID <= 0 {
		return NewValidationError("invalid cart_id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.NewStatus))
	switch newStatus {
	case model.OrderStatusWaiting, model.OrderStatusApproved, model.OrderStatusRejected:
		// OK
	default:
		return NewValidationError("invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByID(ctx, in.CartID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order not found")
		}
		if err != nil {
			return NewStorageError("db error")
		}

		// completedのカートだけが注文
		if cart.Status != model.CartStatusCompleted {
			return NewNotFoundError("order not found")
		}

		// すでに同じなら何もしない
		if cart.OrderStatus == newStatus {
			return nil
		}

		before := string(cart.OrderStatus)
		if err := r.Carts().UpdateOrderStatus(ctx, in.CartID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("order not found")
			}
			return NewStorageError("db error")
		}

		// 監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON := `{"order_status":"` + before + `"}`
		afterJSON := `{"order_status":"` + string(newStatus) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   in.CartID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewStorageError("db error")
		}

		return nil
	})
}
