package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// 管理者向けの操作ログ一覧。新しい順。
func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	f := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		Limit:       limit,
		Offset:      offset,
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		f.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		f.ResourceType = &rt
	}
	if in.ResourceID != "" {
		rid := in.ResourceID
		f.ResourceID = &rid
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

// 期間指定つきの絞り込み（ダッシュボードの直近操作向け）
func (u *AuditLogUsecase) ListSince(ctx context.Context, since time.Time, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = auditDefaultLimit
	}

	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
		CreatedFrom: &since,
		Limit:       limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
