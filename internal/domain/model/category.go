package model

import "time"

// カテゴリ種別（VIDEO / ONLINE / OFFLINE）。
type CategoryType string

const (
	CategoryTypeVideo   CategoryType = "VIDEO"
	CategoryTypeOnline  CategoryType = "ONLINE"
	CategoryTypeOffline CategoryType = "OFFLINE"
)

// 許可された種別かどうか。
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeVideo, CategoryTypeOnline, CategoryTypeOffline:
		return true
	default:
		return false
	}
}

// コースが属するカテゴリ。
type Category struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Type        CategoryType `gorm:"type:varchar(20);not null;default:'VIDEO'" json:"type"`
	Description string       `gorm:"type:text" json:"description"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
