package model

import "time"

type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusCompleted CartStatus = "completed"
)

// 注文レビューステータス（checkout後のみ意味を持つ）
type OrderStatus string

const (
	OrderStatusWaiting  OrderStatus = "waiting"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
)

// 1セッションにつきactiveは1つ（部分ユニークインデックスで保証）
// completedのカート＝注文。削除はせずstatusで分ける。
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string     `gorm:"type:varchar(255);not null;index:idx_carts_active_session,unique,where:status = 'active'" json:"session_id"`
	UserID    *int64     `gorm:"index" json:"user_id"`
	Status    CartStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	// checkoutでwaitingが入り、管理者がapproved/rejectedへ変える
	OrderStatus OrderStatus `gorm:"column:order_status;type:varchar(20)" json:"order_status"`

	PaymentMethod   string `gorm:"type:varchar(255)" json:"payment_method"`
	ShippingAddress string `gorm:"type:text" json:"shipping_address"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
