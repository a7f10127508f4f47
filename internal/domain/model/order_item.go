package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。価格は購入時点のスナップショット（Course.Priceと連動しない）。
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             string          `gorm:"type:char(36);not null;index" json:"order_id"`
	CourseID            int64           `gorm:"not null;index" json:"course_id"`
	CourseTitleSnapshot string          `gorm:"type:varchar(255);not null" json:"course_title_snapshot"`
	Price               decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
