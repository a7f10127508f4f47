package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentUsecaseForTest() (*usecase.PaymentUsecase, *TxManagerMock, *OrderRepoMock, *PaymentRepoMock, *AuditRepoMock, *GatewayMock) {
	orders := &OrderRepoMock{}
	payments := &PaymentRepoMock{}
	audit := &AuditRepoMock{}
	gw := &GatewayMock{}

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:   orders,
		payments: payments,
	}}

	uc := usecase.NewPaymentUsecase(tx, payments, audit, gw)
	return uc, tx, orders, payments, audit, gw
}

func TestPaymentUpdateStatus_CompletedSetsCompletedAtAndMirrorsOrder(t *testing.T) {
	uc, tx, orders, payments, audit, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	tx.On("WithinTx", ctx).Return(nil)
	payments.On("FindByID", ctx, "p-1").Return(model.Payment{
		ID:      "p-1",
		OrderID: "o-1",
		Status:  model.PaymentStatusPending,
	}, nil)

	// completed_atは非nilで渡る
	payments.On("UpdateStatus", ctx, "p-1", model.PaymentStatusCompleted, mock.MatchedBy(func(at *time.Time) bool {
		return at != nil
	})).Return(nil)
	orders.On("UpdatePaymentStatus", ctx, "o-1", model.PaymentStatusCompleted).Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdatePaymentStatus && l.ResourceID == "p-1"
	})).Return(nil)

	err := uc.UpdateStatus(ctx, 1, "p-1", usecase.UpdatePaymentStatusInput{Status: "COMPLETED"})

	assert.NoError(t, err)
	payments.AssertExpectations(t)
	orders.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestPaymentUpdateStatus_FailedLeavesCompletedAtNil(t *testing.T) {
	uc, tx, orders, payments, audit, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	tx.On("WithinTx", ctx).Return(nil)
	payments.On("FindByID", ctx, "p-1").Return(model.Payment{ID: "p-1", OrderID: "o-1", Status: model.PaymentStatusPending}, nil)
	payments.On("UpdateStatus", ctx, "p-1", model.PaymentStatusFailed, (*time.Time)(nil)).Return(nil)
	orders.On("UpdatePaymentStatus", ctx, "o-1", model.PaymentStatusFailed).Return(nil)
	audit.On("Create", ctx, mock.AnythingOfType("model.AuditLog")).Return(nil)

	err := uc.UpdateStatus(ctx, 1, "p-1", usecase.UpdatePaymentStatusInput{Status: "FAILED"})

	assert.NoError(t, err)
	payments.AssertExpectations(t)
}

func TestPaymentUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	uc, tx, orders, payments, audit, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	tx.On("WithinTx", ctx).Return(nil)
	payments.On("FindByID", ctx, "p-1").Return(model.Payment{ID: "p-1", Status: model.PaymentStatusCompleted}, nil)

	err := uc.UpdateStatus(ctx, 1, "p-1", usecase.UpdatePaymentStatusInput{Status: "COMPLETED"})

	assert.NoError(t, err)
	payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUpdateStatus_TerminalStatusRejected(t *testing.T) {
	uc, tx, _, payments, _, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	tx.On("WithinTx", ctx).Return(nil)
	payments.On("FindByID", ctx, "p-1").Return(model.Payment{ID: "p-1", Status: model.PaymentStatusFailed}, nil)

	err := uc.UpdateStatus(ctx, 1, "p-1", usecase.UpdatePaymentStatusInput{Status: "COMPLETED"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid status transition", he.Message)
}

func TestPaymentUpdateStatus_InvalidEnumRejectedBeforeTx(t *testing.T) {
	uc, tx, _, _, _, _ := newPaymentUsecaseForTest()

	err := uc.UpdateStatus(context.Background(), 1, "p-1", usecase.UpdatePaymentStatusInput{Status: "SHIPPED"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid status", he.Message)

	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPaymentDelete_WritesAuditLog(t *testing.T) {
	uc, tx, _, payments, audit, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	tx.On("WithinTx", ctx).Return(nil)
	payments.On("Delete", ctx, "p-1").Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeletePayment && l.ResourceID == "p-1"
	})).Return(nil)

	err := uc.Delete(ctx, 1, "p-1")

	assert.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestVerifyCallback_InvalidSignatureRejected(t *testing.T) {
	uc, tx, _, _, _, gw := newPaymentUsecaseForTest()

	gw.On("VerifySignature", "tx-1", "COMPLETED", "bad").Return(false)

	err := uc.VerifyCallback(context.Background(), usecase.VerifyCallbackInput{
		TransactionCode: "tx-1",
		Status:          "COMPLETED",
		Signature:       "bad",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid signature", he.Message)

	// 署名が不正ならゲートウェイ照会もDBも触らない
	gw.AssertNotCalled(t, "FetchStatus", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestVerifyCallback_GatewayStatusIsAuthoritative(t *testing.T) {
	uc, tx, orders, payments, audit, gw := newPaymentUsecaseForTest()
	ctx := context.Background()

	// コールバックはCOMPLETEDを主張するが、照会結果はFAILED
	gw.On("VerifySignature", "tx-1", "COMPLETED", "sig").Return(true)
	gw.On("FetchStatus", ctx, "tx-1").Return("FAILED", nil)

	tx.On("WithinTx", ctx).Return(nil)
	payments.On("FindByTransactionCode", ctx, "tx-1").Return(model.Payment{
		ID:      "p-1",
		OrderID: "o-1",
		Status:  model.PaymentStatusPending,
	}, nil)
	payments.On("UpdateStatus", ctx, "p-1", model.PaymentStatusFailed, (*time.Time)(nil)).Return(nil)
	orders.On("UpdatePaymentStatus", ctx, "o-1", model.PaymentStatusFailed).Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		// コールバック由来はactorなし
		return l.ActorUserID == 0
	})).Return(nil)

	err := uc.VerifyCallback(ctx, usecase.VerifyCallbackInput{
		TransactionCode: "tx-1",
		Status:          "COMPLETED",
		Signature:       "sig",
	})

	assert.NoError(t, err)
	payments.AssertExpectations(t)
}

func TestVerifyCallback_GatewayUnavailable(t *testing.T) {
	uc, tx, _, _, _, gw := newPaymentUsecaseForTest()
	ctx := context.Background()

	gw.On("VerifySignature", "tx-1", "COMPLETED", "sig").Return(true)
	gw.On("FetchStatus", ctx, "tx-1").Return("", errors.New("timeout"))

	err := uc.VerifyCallback(ctx, usecase.VerifyCallbackInput{
		TransactionCode: "tx-1",
		Status:          "COMPLETED",
		Signature:       "sig",
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPaymentGetDetail_NotFound(t *testing.T) {
	uc, _, _, payments, _, _ := newPaymentUsecaseForTest()
	ctx := context.Background()

	payments.On("FindByID", ctx, "missing").Return(model.Payment{}, repo.ErrNotFound)

	_, err := uc.GetDetail(ctx, "missing")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
