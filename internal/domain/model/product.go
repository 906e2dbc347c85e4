package model

import (
	"strings"
	"time"
)

// 商品
// ColorsとSizesはカンマ区切りの選択肢リスト（位置で対応づく）。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Image       string `gorm:"type:varchar(255)" json:"image"`

	Colors string `gorm:"type:varchar(255)" json:"colors"`
	Sizes  string `gorm:"type:varchar(255)" json:"sizes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// カンマ区切りの選択肢を分解する
func splitOptions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (p Product) ColorOptions() []string {
	return splitOptions(p.Colors)
}

func (p Product) SizeOptions() []string {
	return splitOptions(p.Sizes)
}
