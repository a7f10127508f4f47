package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

type PaymentMethodUsecase struct {
	methods repo.PaymentMethodRepository
}

func NewPaymentMethodUsecase(methods repo.PaymentMethodRepository) *PaymentMethodUsecase {
	return &PaymentMethodUsecase{methods: methods}
}

type PaymentMethodOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// 決済手段マスタの一覧（チェックアウト画面向け）
func (u *PaymentMethodUsecase) List(ctx context.Context) ([]PaymentMethodOutput, error) {
	methods, err := u.methods.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]PaymentMethodOutput, 0, len(methods))
	for i := range methods {
		out = append(out, PaymentMethodOutput{
			ID:   methods[i].ID,
			Name: methods[i].Name,
		})
	}
	return out, nil
}
