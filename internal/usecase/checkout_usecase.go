package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

type CheckNowInput struct {
	PaymentMethodID int64
	CourseID        int64
	IdempotencyKey  string
}

type CheckOutInput struct {
	PaymentMethodID int64
	CourseIDs       []int64
	IdempotencyKey  string
}

// 単一コースの即時購入。
func (u *CheckoutUsecase) CheckNow(ctx context.Context, userID int64, in CheckNowInput) (OrderOutput, error) {
	if in.CourseID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid course_id")
	}
	return u.placeOrder(ctx, userID, in.PaymentMethodID, []int64{in.CourseID}, in.IdempotencyKey)
}

// カート相当の複数コース購入（カートはクライアント側が持つ）。
func (u *CheckoutUsecase) CheckOut(ctx context.Context, userID int64, in CheckOutInput) (OrderOutput, error) {
	if len(in.CourseIDs) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "course_ids required")
	}
	return u.placeOrder(ctx, userID, in.PaymentMethodID, in.CourseIDs, in.IdempotencyKey)
}

func (u *CheckoutUsecase) placeOrder(ctx context.Context, userID int64, paymentMethodID int64, courseIDs []int64, idemKey string) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentMethodID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method_id")
	}

	key := strings.TrimSpace(idemKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ注文を返す（二重送信対策）
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		if _, err := r.PaymentMethods().FindByID(ctx, paymentMethodID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid payment method")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := time.Now()
		items := make([]model.OrderItem, 0, len(courseIDs))
		total := decimal.Zero

		for _, courseID := range courseIDs {
			c, err := r.Courses().FindByID(ctx, courseID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid course")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if c.Status != model.CourseStatusActive {
				return NewHTTPError(http.StatusBadRequest, "course not available")
			}

			// 価格は購入時点のスナップショット
			items = append(items, model.OrderItem{
				CourseID:            c.ID,
				CourseTitleSnapshot: c.Title,
				Price:               c.Price,
				CreatedAt:           now,
			})
			total = total.Add(c.Price)
		}

		order := model.Order{
			ID:             uuid.NewString(),
			UserID:         userID,
			Status:         model.OrderStatusPending,
			PaymentStatus:  model.PaymentStatusPending,
			TotalAmount:    total,
			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			// 競合（同時に同じキーが入った等）はもう一回検索して同じ結果を返す
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, userID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toOrderOutput(ex2, items2)
				return nil
			}
			return NewHTTPError(http.StatusBadRequest, "idempotency conflict")
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p := model.Payment{
			ID:              uuid.NewString(),
			TransactionCode: uuid.NewString(),
			OrderID:         order.ID,
			Amount:          total,
			PaymentMethodID: paymentMethodID,
			Status:          model.PaymentStatusPending,
			CreatedAt:       now,
		}
		if err := r.Payments().Create(ctx, p); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
