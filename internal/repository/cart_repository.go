package repository

import (
	"context"
	"time"

	"revorz/internal/domain/model"
)

// 管理者向け注文一覧の絞り込み
type OrderListFilter struct {
	OrderStatus string
	Query       string
}

type CartRepository interface {
	// sessionのactiveカートを取得し、無ければ作成。
	// 同時呼び出しでもactiveが2つにはならない（制約＋再取得）。
	GetOrCreateActiveBySessionID(ctx context.Context, sessionID string, userID *int64) (model.Cart, error)

	FindActiveBySessionID(ctx context.Context, sessionID string) (model.Cart, error)
	FindByID(ctx context.Context, cartID int64) (model.Cart, error)

	// status=activeのときだけcompleted(waiting)へ倒す。
	// すでにcompletedならErrConflict（二重checkout防止）。
	Finalize(ctx context.Context, cartID int64, paymentMethod string, shippingAddress string, now time.Time) (model.Cart, error)

	// 注文レビューステータスを更新（completedのカートのみ）
	UpdateOrderStatus(ctx context.Context, cartID int64, status model.OrderStatus) error

	// completedのカート＝注文の一覧
	ListCompleted(ctx context.Context, f OrderListFilter) ([]model.Cart, error)

	// ユーザー削除時に本人のカートを明細ごと消す
	DeleteByUserID(ctx context.Context, userID int64) error
}
