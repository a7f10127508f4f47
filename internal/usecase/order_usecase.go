package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 注文入力を検証する約束（validatorパッケージが実装）
type OrderValidator interface {
	ValidateCreate(in CreateOrderInput) error
	ValidateItems(items []OrderItemInput) error
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	auditRepo repo.AuditLogRepository
	validator OrderValidator
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	auditRepo repo.AuditLogRepository,
	validator OrderValidator,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		users:     users,
		auditRepo: auditRepo,
		validator: validator,
	}
}

type OrderItemInput struct {
	CourseID int64           `json:"course_id"`
	Price    decimal.Decimal `json:"price"`
}

type CreateOrderInput struct {
	UserID          int64            `json:"user_id"`
	PaymentMethodID int64            `json:"payment_method_id"`
	Items           []OrderItemInput `json:"items"`
	Notes           string           `json:"notes"`
}

type UpdateOrderInput struct {
	Status *string          `json:"status"`
	Notes  *string          `json:"notes"`
	Items  []OrderItemInput `json:"items"` // nilなら明細はそのまま
}

type OrderItemOutput struct {
	CourseID int64           `json:"course_id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
}

type OrderUserOutput struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type OrderOutput struct {
	ID            string            `json:"id"`
	UserID        int64             `json:"user_id"`
	User          *OrderUserOutput  `json:"user,omitempty"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// 注文一覧（顧客・明細込みで全件。管理画面はページングしない）
func (u *OrderUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for i := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, orders[i].ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(orders[i], items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetDetail(ctx context.Context, orderID string) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文作成フォームの顧客一覧
func (u *OrderUsecase) ListUsers(ctx context.Context) ([]OrderUserOutput, error) {
	users, err := u.users.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]OrderUserOutput, 0, len(users))
	for _, us := range users {
		out = append(out, OrderUserOutput{ID: us.ID, FullName: us.FullName, Email: us.Email})
	}
	return out, nil
}

// 管理者による注文作成。
// 明細の検証はDBに触る前に行う（明細なしはネットワーク前に弾く仕様）。
func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if err := u.validator.ValidateCreate(in); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// 顧客の存在確認
	user, err := u.users.FindByID(ctx, in.UserID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()

		// 明細ごとにコースを確認してスナップショットを作る
		items := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero

		for _, it := range in.Items {
			c, err := r.Courses().FindByID(ctx, it.CourseID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid course")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			// 価格は提出値をコピーする（コース価格とは連動させない）
			items = append(items, model.OrderItem{
				CourseID:            it.CourseID,
				CourseTitleSnapshot: c.Title,
				Price:               it.Price,
				CreatedAt:           now,
			})
			total = total.Add(it.Price)
		}

		order := model.Order{
			ID:             uuid.NewString(),
			UserID:         in.UserID,
			Status:         model.OrderStatusPending,
			PaymentStatus:  model.PaymentStatusPending,
			TotalAmount:    total,
			Notes:          in.Notes,
			IdempotencyKey: uuid.NewString(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 決済手段が指定されていればPENDINGの決済も作る
		if in.PaymentMethodID > 0 {
			if _, err := r.PaymentMethods().FindByID(ctx, in.PaymentMethodID); err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusBadRequest, "invalid payment method")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			p := model.Payment{
				ID:              uuid.NewString(),
				TransactionCode: uuid.NewString(),
				OrderID:         order.ID,
				Amount:          total,
				PaymentMethodID: in.PaymentMethodID,
				Status:          model.PaymentStatusPending,
				CreatedAt:       now,
			}
			if err := r.Payments().Create(ctx, p); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = toOrderOutput(order, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	out.User = &OrderUserOutput{ID: user.ID, FullName: user.FullName, Email: user.Email}
	return out, nil
}

// 可変フィールドの更新。ステータスは遷移グラフに従う。
func (u *OrderUsecase) Update(ctx context.Context, actorAdminUserID int64, orderID string, in UpdateOrderInput) (OrderOutput, error) {
	if actorAdminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	// 明細差し替えが来ている場合はDBに触る前に検証
	if in.Items != nil {
		if err := u.validator.ValidateItems(in.Items); err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	var newStatus model.OrderStatus
	if in.Status != nil {
		newStatus = model.OrderStatus(*in.Status)
		if !newStatus.Valid() {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 明細差し替え → 合計再計算
		if in.Items != nil {
			if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			now := time.Now()
			replaced := make([]model.OrderItem, 0, len(in.Items))
			total := decimal.Zero
			for _, it := range in.Items {
				c, err := r.Courses().FindByID(ctx, it.CourseID)
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusBadRequest, "invalid course")
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				replaced = append(replaced, model.OrderItem{
					CourseID:            it.CourseID,
					CourseTitleSnapshot: c.Title,
					Price:               it.Price,
					CreatedAt:           now,
				})
				total = total.Add(it.Price)
			}

			if err := r.OrderItems().CreateBulk(ctx, orderID, replaced); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			o.TotalAmount = total
			items = replaced
		}

		if in.Notes != nil {
			o.Notes = *in.Notes
		}

		if err := r.Orders().Update(ctx, o); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// ステータス遷移
		if in.Status != nil && newStatus != o.Status {
			if !o.Status.CanTransitionTo(newStatus) {
				return NewHTTPError(http.StatusBadRequest, "invalid status transition")
			}

			// 受講者数の反映
			if newStatus == model.OrderStatusCompleted {
				for _, it := range items {
					if err := r.Courses().IncreaseStudentCount(ctx, it.CourseID, 1); err != nil {
						return NewHTTPError(http.StatusInternalServerError, "db error")
					}
				}
			}
			if o.Status == model.OrderStatusCompleted && newStatus == model.OrderStatusCancelled {
				for _, it := range items {
					if err := r.Courses().DecreaseStudentCount(ctx, it.CourseID, 1); err != nil {
						return NewHTTPError(http.StatusInternalServerError, "db error")
					}
				}
			}

			beforeStatus := string(o.Status)
			if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusNotFound, "not found")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			// 監査ログ（UPDATE_ORDER_STATUS）
			beforeJSON := `{"status":"` + beforeStatus + `"}`
			afterJSON := `{"status":"` + string(newStatus) + `"}`
			if err := u.auditRepo.Create(ctx, model.AuditLog{
				ActorUserID:  actorAdminUserID,
				Action:       model.AuditActionUpdateOrderStatus,
				ResourceType: model.AuditResourceOrder,
				ResourceID:   orderID,
				BeforeJSON:   beforeJSON,
				AfterJSON:    afterJSON,
				CreatedAt:    time.Now(),
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			o.Status = newStatus
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文削除。明細と決済も同じトランザクションで消す。
func (u *OrderUsecase) Delete(ctx context.Context, actorAdminUserID int64, orderID string) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Payments().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			CourseID: it.CourseID,
			Title:    it.CourseTitleSnapshot,
			Price:    it.Price,
		})
	}

	out := OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}

	if o.User != nil {
		out.User = &OrderUserOutput{
			ID:       o.User.ID,
			FullName: o.User.FullName,
			Email:    o.User.Email,
		}
	}

	return out
}
