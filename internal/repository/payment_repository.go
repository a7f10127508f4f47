package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type PaymentRepository interface {
	// 一覧は注文・決済手段込みで全件返す
	ListAll(ctx context.Context) ([]model.Payment, error)
	FindByID(ctx context.Context, paymentID string) (model.Payment, error)
	FindByTransactionCode(ctx context.Context, code string) (model.Payment, error)

	Create(ctx context.Context, p model.Payment) error

	// completedAtはCOMPLETEDのときだけ非nil
	UpdateStatus(ctx context.Context, paymentID string, status model.PaymentStatus, completedAt *time.Time) error

	Delete(ctx context.Context, paymentID string) error
	DeleteByOrderID(ctx context.Context, orderID string) error
}
