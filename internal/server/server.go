package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlersはルーティングに必要なhandler一式。
type Handlers struct {
	Auth          *handler.AuthHandler
	Course        *handler.CourseHandler
	Category      *handler.CategoryHandler
	Order         *handler.OrderHandler
	Checkout      *handler.CheckoutHandler
	Payment       *handler.PaymentHandler
	PaymentMethod *handler.PaymentMethodHandler
	Statistics    *handler.StatisticsHandler
	AuditLog      *handler.AuditLogHandler
}

// Startはechoを組み立てて待ち受ける。
func Start(cfg config.Config, userRepo repository.UserRepository, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	registerRoutes(e, cfg, userRepo, h)

	return e.Start(":" + cfg.Port)
}
