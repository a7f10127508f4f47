package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ダッシュボード用の集計API（管理者のみ）
type StatisticsHandler struct {
	uc *usecase.StatisticsUsecase
}

func NewStatisticsHandler(uc *usecase.StatisticsUsecase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

const defaultNewestLimit = 5

func (h *StatisticsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/statistics")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/revenue", h.revenue)
	admin.GET("/revenue-by-course", h.revenueByCourse)
	admin.GET("/newest", h.newest)
	admin.GET("/users", h.users)
	admin.GET("/instructor", h.instructors)
}

func (h *StatisticsHandler) revenue(c echo.Context) error {
	out, err := h.uc.Revenue(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StatisticsHandler) revenueByCourse(c echo.Context) error {
	out, err := h.uc.RevenueByCourse(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StatisticsHandler) newest(c echo.Context) error {
	limit := defaultNewestLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = n
	}

	out, err := h.uc.NewestOrders(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StatisticsHandler) users(c echo.Context) error {
	out, err := h.uc.Users(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StatisticsHandler) instructors(c echo.Context) error {
	out, err := h.uc.Instructors(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
