package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 購入系（ログイン必須、管理者でなくてよい）
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

type CheckNowRequest struct {
	PaymentMethodID int64 `json:"payment_method_id"`
	CourseID        int64 `json:"course_id"`
}

type CheckOutRequest struct {
	PaymentMethodID int64   `json:"payment_method_id"`
	CourseIDs       []int64 `json:"course_ids"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("/check-now", h.checkNow)
	g.POST("/check-out", h.checkOut)
}

func (h *CheckoutHandler) checkNow(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckNowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 二重送信防止キーはヘッダーから受け取る（bodyには入れない）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.CheckNow(c.Request().Context(), userID, usecase.CheckNowInput{
		PaymentMethodID: req.PaymentMethodID,
		CourseID:        req.CourseID,
		IdempotencyKey:  idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) checkOut(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckOutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.CheckOut(c.Request().Context(), userID, usecase.CheckOutInput{
		PaymentMethodID: req.PaymentMethodID,
		CourseIDs:       req.CourseIDs,
		IdempotencyKey:  idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
