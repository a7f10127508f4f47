package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"app/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// 400 入力不足
	ErrValidation = errors.New("validation error")
	// 401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	// 403 権限
	ErrForbidden = errors.New("forbidden")
	// 500
	ErrInternal = errors.New("internal error")
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

type UserDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type JwtAccessTokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	jwtSecret []byte
}

func NewAuthUsecase(users repository.UserRepository, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		jwtSecret: []byte(jwtSecret),
	}
}

// ログイン。成功時にアクセストークンを発行してlast_login_atを更新する。
func (u *AuthUsecase) Login(ctx context.Context, in AuthLoginRequest) (AuthLoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return AuthLoginResponse{}, ErrValidation
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return AuthLoginResponse{}, ErrInternal
	}
	// 存在しないのか認証失敗なのかは区別させない
	if user == nil {
		return AuthLoginResponse{}, ErrUnauthorized
	}

	// 停止ユーザーはログイン不可
	if !user.IsActive {
		return AuthLoginResponse{}, ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthLoginResponse{}, ErrUnauthorized
	}

	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"tv":   user.TokenVersion,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return AuthLoginResponse{}, ErrInternal
	}

	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return AuthLoginResponse{}, ErrInternal
	}

	return AuthLoginResponse{
		User: UserDTO{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     string(user.Role),
		},
		Token: JwtAccessTokenDTO{
			AccessToken: signed,
			ExpiresIn:   int(accessTokenTTL.Seconds()),
		},
	}, nil
}

// ログアウト＝token_versionを+1して発行済みトークンを無効化する。
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}

	if err := u.users.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUnauthorized
		}
		return ErrInternal
	}
	return nil
}
