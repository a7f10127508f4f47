package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCheckoutUsecaseForTest() (*usecase.CheckoutUsecase, *TxManagerMock, *OrderRepoMock, *OrderItemRepoMock, *PaymentRepoMock, *CourseRepoMock, *PaymentMethodRepoMock) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	payments := &PaymentRepoMock{}
	courses := &CourseRepoMock{}
	methods := &PaymentMethodRepoMock{}

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:         orders,
		orderItems:     items,
		payments:       payments,
		courses:        courses,
		paymentMethods: methods,
	}}

	uc := usecase.NewCheckoutUsecase(tx)
	return uc, tx, orders, items, payments, courses, methods
}

func TestCheckNow_CreatesPendingOrderAndPayment(t *testing.T) {
	uc, tx, orders, items, payments, courses, methods := newCheckoutUsecaseForTest()
	ctx := context.Background()

	tx.On("WithinTx", ctx).Return(nil)
	orders.On("FindByIdempotencyKey", ctx, int64(7), "key-1").Return(model.Order{}, false, nil)
	methods.On("FindByID", ctx, int64(1)).Return(model.PaymentMethod{ID: 1, Name: "カード"}, nil)
	courses.On("FindByID", ctx, int64(3)).Return(model.Course{
		ID:     3,
		Title:  "英語会話",
		Price:  decimal.NewFromInt(980),
		Status: model.CourseStatusActive,
	}, nil)

	orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.Status == model.OrderStatusPending && o.TotalAmount.Equal(decimal.NewFromInt(980))
	})).Return(nil)
	items.On("CreateBulk", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	payments.On("Create", ctx, mock.MatchedBy(func(p model.Payment) bool {
		return p.Status == model.PaymentStatusPending && p.Amount.Equal(decimal.NewFromInt(980))
	})).Return(nil)

	out, err := uc.CheckNow(ctx, 7, usecase.CheckNowInput{
		PaymentMethodID: 1,
		CourseID:        3,
		IdempotencyKey:  "key-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "PENDING", out.Status)
	// 価格は購入時点のコース価格のスナップショット
	assert.True(t, out.Items[0].Price.Equal(decimal.NewFromInt(980)))

	orders.AssertExpectations(t)
	payments.AssertExpectations(t)
}

func TestCheckout_SameIdempotencyKeyReturnsExistingOrder(t *testing.T) {
	uc, tx, orders, items, payments, _, _ := newCheckoutUsecaseForTest()
	ctx := context.Background()

	existing := model.Order{ID: "o-1", UserID: 7, Status: model.OrderStatusPending, TotalAmount: decimal.NewFromInt(980)}

	tx.On("WithinTx", ctx).Return(nil)
	orders.On("FindByIdempotencyKey", ctx, int64(7), "key-1").Return(existing, true, nil)
	items.On("ListByOrderID", ctx, "o-1").Return([]model.OrderItem{{CourseID: 3, Price: decimal.NewFromInt(980)}}, nil)

	out, err := uc.CheckOut(ctx, 7, usecase.CheckOutInput{
		PaymentMethodID: 1,
		CourseIDs:       []int64{3},
		IdempotencyKey:  "key-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "o-1", out.ID)

	// 新しい注文も決済も作られない
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_MissingIdempotencyKeyRejected(t *testing.T) {
	uc, tx, _, _, _, _, _ := newCheckoutUsecaseForTest()

	_, err := uc.CheckOut(context.Background(), 7, usecase.CheckOutInput{
		PaymentMethodID: 1,
		CourseIDs:       []int64{3},
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestCheckout_InactiveCourseRejected(t *testing.T) {
	uc, tx, orders, _, _, courses, methods := newCheckoutUsecaseForTest()
	ctx := context.Background()

	tx.On("WithinTx", ctx).Return(nil)
	orders.On("FindByIdempotencyKey", ctx, int64(7), "key-1").Return(model.Order{}, false, nil)
	methods.On("FindByID", ctx, int64(1)).Return(model.PaymentMethod{ID: 1}, nil)
	courses.On("FindByID", ctx, int64(3)).Return(model.Course{ID: 3, Status: model.CourseStatusInactive}, nil)

	_, err := uc.CheckNow(ctx, 7, usecase.CheckNowInput{
		PaymentMethodID: 1,
		CourseID:        3,
		IdempotencyKey:  "key-1",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "course not available", he.Message)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCourseListRejected(t *testing.T) {
	uc, tx, _, _, _, _, _ := newCheckoutUsecaseForTest()

	_, err := uc.CheckOut(context.Background(), 7, usecase.CheckOutInput{
		PaymentMethodID: 1,
		CourseIDs:       []int64{},
		IdempotencyKey:  "key-1",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}
