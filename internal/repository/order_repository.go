package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	// 全件（管理画面はページングしない。件数は多くても数百想定）
	ListAll(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) error

	// notes/total_amountなど可変フィールドの更新
	Update(ctx context.Context, order model.Order) error

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error

	Delete(ctx context.Context, orderID string) error

	// 二重送信対策（同じキーなら同じ注文を返す）
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)
}
