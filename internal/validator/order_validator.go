package validator

import (
	"errors"

	"app/internal/usecase"
)

var (
	// 明細が空
	ErrEmptyItems = errors.New("order items required")

	// 明細にコースIDがない
	ErrMissingCourseID = errors.New("course id required")

	// 価格が負
	ErrNegativePrice = errors.New("price must not be negative")

	// 顧客IDがない
	ErrMissingUserID = errors.New("user id required")
)

type orderValidator struct{}

// Usecaseは interface を依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// 注文作成の入力を検証。DBに触る前に呼ぶ。
func (v *orderValidator) ValidateCreate(in usecase.CreateOrderInput) error {
	if in.UserID <= 0 {
		return ErrMissingUserID
	}
	return v.ValidateItems(in.Items)
}

// 編集中は明細が空でもよいが、送信時点では1件以上必要。
func (v *orderValidator) ValidateItems(items []usecase.OrderItemInput) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}

	for _, it := range items {
		if it.CourseID <= 0 {
			return ErrMissingCourseID
		}
		if it.Price.IsNegative() {
			return ErrNegativePrice
		}
	}

	return nil
}
