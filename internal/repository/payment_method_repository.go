package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentMethodRepository interface {
	ListAll(ctx context.Context) ([]model.PaymentMethod, error)
	FindByID(ctx context.Context, id int64) (model.PaymentMethod, error)
}
