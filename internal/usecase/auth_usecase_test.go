package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func activeUserWithPassword(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &model.User{
		ID:           7,
		FullName:     "管理者",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		TokenVersion: 3,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	users := &UserRepoMock{}
	uc := usecase.NewAuthUsecase(users, testJWTSecret)
	ctx := context.Background()

	user := activeUserWithPassword(t, "pass1234")
	users.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
		// last_login_atが入る
		return u.LastLoginAt != nil
	})).Return(nil)

	out, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "admin@example.com", Password: "pass1234"})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token.AccessToken)
	assert.Equal(t, 900, out.Token.ExpiresIn)
	assert.Equal(t, "ADMIN", out.User.Role)

	// クレームの中身を確認
	tok, err := jwt.Parse(out.Token.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.Equal(t, float64(3), claims["tv"])
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &UserRepoMock{}
	uc := usecase.NewAuthUsecase(users, testJWTSecret)
	ctx := context.Background()

	users.On("FindByEmail", ctx, "admin@example.com").Return(activeUserWithPassword(t, "pass1234"), nil)

	_, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "admin@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := &UserRepoMock{}
	uc := usecase.NewAuthUsecase(users, testJWTSecret)
	ctx := context.Background()

	users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

	_, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "nobody@example.com", Password: "pass1234"})

	// 存在しないのか認証失敗なのかは区別させない
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestLogin_InactiveUserForbidden(t *testing.T) {
	users := &UserRepoMock{}
	uc := usecase.NewAuthUsecase(users, testJWTSecret)
	ctx := context.Background()

	user := activeUserWithPassword(t, "pass1234")
	user.IsActive = false
	users.On("FindByEmail", ctx, "admin@example.com").Return(user, nil)

	_, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "admin@example.com", Password: "pass1234"})

	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestLogin_MissingInput(t *testing.T) {
	users := &UserRepoMock{}
	uc := usecase.NewAuthUsecase(users, testJWTSecret)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{Email: "", Password: ""})

	assert.ErrorIs(t, err, usecase.ErrValidation)
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogout_IncrementsTokenVersion(t *testing.T) {
	users := &UserRepoMock{}
	uc := usecase.NewAuthUsecase(users, testJWTSecret)
	ctx := context.Background()

	users.On("IncrementTokenVersion", ctx, int64(7)).Return(nil)

	err := uc.Logout(ctx, 7)

	assert.NoError(t, err)
	users.AssertExpectations(t)
}
