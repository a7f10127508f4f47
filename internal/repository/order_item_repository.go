package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)

	// 明細差し替え・注文削除で使う
	DeleteByOrderID(ctx context.Context, orderID string) error
}
