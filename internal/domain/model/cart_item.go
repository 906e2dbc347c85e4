package model

import "time"

// カートの明細
// 追加時点の価格を必ず保存する（以後のproduct価格変更の影響を受けない）。
// (cart_id, product_id, color, size) はユニーク。同じ組は数量加算になる。
type CartItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64 `gorm:"not null;index;uniqueIndex:idx_cart_items_variant" json:"cart_id"`
	ProductID int64 `gorm:"not null;index;uniqueIndex:idx_cart_items_variant" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
	UnitPrice int64 `gorm:"not null;column:unit_price" json:"unit_price"`

	// バリアント（追加時に選んだ色とサイズ）
	Color string `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_items_variant" json:"color"`
	Size  string `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_items_variant" json:"size"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
