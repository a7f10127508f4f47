package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 決済ゲートウェイの約束（infra/gatewayが実装）
type PaymentGateway interface {
	VerifySignature(transactionCode string, status string, signature string) bool
	FetchStatus(ctx context.Context, transactionCode string) (string, error)
}

type PaymentUsecase struct {
	tx          repo.TransactionManager
	paymentRepo repo.PaymentRepository
	auditRepo   repo.AuditLogRepository
	gateway     PaymentGateway
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	paymentRepo repo.PaymentRepository,
	auditRepo repo.AuditLogRepository,
	gateway PaymentGateway,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:          tx,
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		gateway:     gateway,
	}
}

type UpdatePaymentStatusInput struct {
	Status string
}

type VerifyCallbackInput struct {
	TransactionCode string `json:"transaction_code"`
	Status          string `json:"status"`
	Signature       string `json:"signature"`
}

type PaymentOutput struct {
	ID              string           `json:"id"`
	TransactionCode string           `json:"transaction_code"`
	OrderID         string           `json:"order_id"`
	Order           *OrderOutput     `json:"order,omitempty"`
	User            *OrderUserOutput `json:"user,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
}

// 決済一覧（注文・顧客・決済手段込みで全件）
func (u *PaymentUsecase) List(ctx context.Context) ([]PaymentOutput, error) {
	payments, err := u.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]PaymentOutput, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentOutput(&payments[i]))
	}
	return out, nil
}

func (u *PaymentUsecase) GetDetail(ctx context.Context, paymentID string) (PaymentOutput, error) {
	if paymentID == "" {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.paymentRepo.FindByID(ctx, paymentID)
	if err == repo.ErrNotFound {
		return PaymentOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toPaymentOutput(&p), nil
}

// ステータスのみ更新（他のフィールドは読み取り専用）。
// 注文側のpayment_statusも同じトランザクションでミラーする。
func (u *PaymentUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, paymentID string, in UpdatePaymentStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.PaymentStatus(in.Status)
	if !newStatus.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.applyStatus(ctx, r, actorAdminUserID, p, newStatus)
	})
}

func (u *PaymentUsecase) Delete(ctx context.Context, actorAdminUserID int64, paymentID string) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Payments().Delete(ctx, paymentID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionDeletePayment,
			ResourceType: model.AuditResourcePayment,
			ResourceID:   paymentID,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// ゲートウェイのコールバック検証。
// 署名を確認したうえで、最終ステータスはゲートウェイに問い合わせて確定する。
func (u *PaymentUsecase) VerifyCallback(ctx context.Context, in VerifyCallbackInput) error {
	if in.TransactionCode == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid transaction_code")
	}

	if !u.gateway.VerifySignature(in.TransactionCode, in.Status, in.Signature) {
		return NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	confirmed, err := u.gateway.FetchStatus(ctx, in.TransactionCode)
	if err != nil {
		return NewHTTPError(http.StatusBadGateway, "gateway unavailable")
	}

	newStatus := model.PaymentStatus(confirmed)
	if !newStatus.Valid() {
		return NewHTTPError(http.StatusBadGateway, "invalid gateway status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByTransactionCode(ctx, in.TransactionCode)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// コールバック由来はactorなし（0）
		return u.applyStatus(ctx, r, 0, p, newStatus)
	})
}

// 遷移を適用する共通パス。同じ値への更新はno-op。
func (u *PaymentUsecase) applyStatus(ctx context.Context, r repo.TxRepos, actorUserID int64, p model.Payment, newStatus model.PaymentStatus) error {
	if p.Status == newStatus {
		return nil
	}
	if !p.Status.CanTransitionTo(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status transition")
	}

	// completed_atはCOMPLETEDのときだけ入れる
	var completedAt *time.Time
	if newStatus == model.PaymentStatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	if err := r.Payments().UpdateStatus(ctx, p.ID, newStatus, completedAt); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 注文側のミラー
	if err := r.Orders().UpdatePaymentStatus(ctx, p.OrderID, newStatus); err != nil {
		if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		// 注文が先に消えていても決済の更新自体は通す
	}

	beforeJSON := `{"status":"` + string(p.Status) + `"}`
	afterJSON := `{"status":"` + string(newStatus) + `"}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionUpdatePaymentStatus,
		ResourceType: model.AuditResourcePayment,
		ResourceID:   p.ID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func toPaymentOutput(p *model.Payment) PaymentOutput {
	out := PaymentOutput{
		ID:              p.ID,
		TransactionCode: p.TransactionCode,
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		CompletedAt:     p.CompletedAt,
	}

	if p.Order != nil {
		o := toOrderOutput(*p.Order, nil)
		out.Order = &o
		if p.Order.User != nil {
			out.User = &OrderUserOutput{
				ID:       p.Order.User.ID,
				FullName: p.Order.User.FullName,
				Email:    p.Order.User.Email,
			}
		}
	}
	if p.PaymentMethod != nil {
		out.PaymentMethod = p.PaymentMethod.Name
	}

	return out
}
