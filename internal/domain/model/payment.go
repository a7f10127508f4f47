package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// COMPLETED/FAILEDは終端。
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false
	}
	return next == PaymentStatusCompleted || next == PaymentStatusFailed
}

// 決済。completed_atはstatusがCOMPLETEDのときだけ入る。
type Payment struct {
	ID              string          `gorm:"type:char(36);primaryKey" json:"id"`
	TransactionCode string          `gorm:"type:varchar(128);not null;uniqueIndex" json:"transaction_code"`
	OrderID         string          `gorm:"type:char(36);not null;index" json:"order_id"`
	Order           *Order          `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethodID int64           `gorm:"not null" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod  `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	Status          PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}
