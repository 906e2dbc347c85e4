package repository

import (
	"context"
	"errors"
	"time"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// sessionのactiveカートを取得し、無ければ作成。
// activeの一意性は部分ユニークインデックスが守る。INSERTが制約で弾かれたら
// 並行で作られた方を取り直す（retry-on-conflict）。
func (r *CartGormRepository) GetOrCreateActiveBySessionID(ctx context.Context, sessionID string, userID *int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status = ?", sessionID, model.CartStatusActive).
		Order("id desc").
		First(&cart).Error

	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, err
	}

	// 無ければ作る
	now := time.Now()
	newCart := model.Cart{
		SessionID: sessionID,
		UserID:    userID,
		Status:    model.CartStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if createErr := r.db.WithContext(ctx).Create(&newCart).Error; createErr != nil {
		if !isUniqueViolation(createErr) {
			return model.Cart{}, createErr
		}

		// 同時に別リクエストが作った。そのカートを取り直す。
		retryErr := r.db.WithContext(ctx).
			Where("session_id = ? AND status = ?", sessionID, model.CartStatusActive).
			Order("id desc").
			First(&cart).Error
		if retryErr != nil {
			return model.Cart{}, createErr
		}
		return cart, nil
	}

	return newCart, nil
}

// sessionのactiveカートを取得
func (r *CartGormRepository) FindActiveBySessionID(ctx context.Context, sessionID string) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status = ?", sessionID, model.CartStatusActive).
		Order("id desc").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// status=activeの間だけcompleted(waiting)へ倒す条件付きUPDATE（1文）。
// RowsAffected=0のときはカートを見直して、存在すればErrConflict（二重checkout）、
// 無ければErrNotFound。
func (r *CartGormRepository) Finalize(ctx context.Context, cartID int64, paymentMethod string, shippingAddress string, now time.Time) (model.Cart, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ? AND status = ?", cartID, model.CartStatusActive).
		Updates(map[string]interface{}{
			"status":           model.CartStatusCompleted,
			"order_status":     model.OrderStatusWaiting,
			"payment_method":   paymentMethod,
			"shipping_address": shippingAddress,
			"updated_at":       now,
		})

	if res.Error != nil {
		return model.Cart{}, res.Error
	}

	if res.RowsAffected == 0 {
		var existing model.Cart
		err := r.db.WithContext(ctx).Where("id = ?", cartID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Cart{}, repo.ErrNotFound
		}
		if err != nil {
			return model.Cart{}, err
		}
		//すでにcompleted
		return model.Cart{}, repo.ErrConflict
	}

	return r.FindByID(ctx, cartID)
}

// 注文レビューステータスを更新（completedのカートのみ）
func (r *CartGormRepository) UpdateOrderStatus(ctx context.Context, cartID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ? AND status = ?", cartID, model.CartStatusCompleted).
		Update("order_status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// completedのカート＝注文の一覧
func (r *CartGormRepository) ListCompleted(ctx context.Context, f repo.OrderListFilter) ([]model.Cart, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("status = ?", model.CartStatusCompleted)

	if f.OrderStatus != "" {
		q = q.Where("order_status = ?", f.OrderStatus)
	}

	if f.Query != "" {
		// ユーザー名検索、またはカートID一致
		q = q.Joins("left join users on users.id = carts.user_id").
			Where("users.username LIKE ? OR carts.id::text = ?", "%"+f.Query+"%", f.Query)
	}

	var carts []model.Cart
	if err := q.Order("carts.updated_at desc").Find(&carts).Error; err != nil {
		return []model.Cart{}, err
	}
	return carts, nil
}

// 本人のカートを明細→カートの順で消す（ユーザー削除用）
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sub := r.db.Model(&model.Cart{}).Select("id").Where("user_id = ?", userID)

	if err := r.db.WithContext(ctx).
		Where("cart_id IN (?)", sub).
		Delete(&model.CartItem{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Cart{}).Error
}
