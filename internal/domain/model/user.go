package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// 顧客と講師の両方を表す。講師はcourse_instructors経由でコースに紐づく。
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber  string     `gorm:"type:varchar(20)" json:"phone_number"`
	Address      string     `gorm:"type:varchar(512)" json:"address"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	TokenVersion int        `gorm:"not null;default:0" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
