package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// 注文作成フォーム用の顧客一覧
	ListAll(ctx context.Context) ([]model.User, error)

	// ロール変更・最終ログイン更新など
	Update(ctx context.Context, user *model.User) error

	// ログアウト＝トークンのバージョンを+1（古いJWTを無効化）
	IncrementTokenVersion(ctx context.Context, userID int64) error
}
