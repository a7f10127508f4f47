package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/gateway"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	// .envはローカル開発用。なければ環境変数だけで動く。
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.PaymentMethod{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	courseRepo := infraRepo.NewCourseGormRepository(gormDB)
	paymentMethodRepo := infraRepo.NewPaymentMethodGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	statsRepo := infraRepo.NewStatisticsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// 決済ゲートウェイ
	gw := gateway.NewClient(cfg.GatewayURL, cfg.GatewaySecret)

	// Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	courseUC := usecase.NewCourseUsecase(courseRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	orderUC := usecase.NewOrderUsecase(txManager, userRepo, auditRepo, validator.NewOrderValidator())
	checkoutUC := usecase.NewCheckoutUsecase(txManager)
	paymentUC := usecase.NewPaymentUsecase(txManager, paymentRepo, auditRepo, gw)
	paymentMethodUC := usecase.NewPaymentMethodUsecase(paymentMethodRepo)
	statsUC := usecase.NewStatisticsUsecase(statsRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	// Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Course:        handler.NewCourseHandler(courseUC),
		Category:      handler.NewCategoryHandler(categoryUC),
		Order:         handler.NewOrderHandler(orderUC),
		Checkout:      handler.NewCheckoutHandler(checkoutUC),
		Payment:       handler.NewPaymentHandler(paymentUC),
		PaymentMethod: handler.NewPaymentMethodHandler(paymentMethodUC),
		Statistics:    handler.NewStatisticsHandler(statsUC),
		AuditLog:      handler.NewAuditLogHandler(auditUC),
	}

	// Server起動
	if err := server.Start(cfg, userRepo, handlers); err != nil {
		log.Fatalf("server: %v", err)
	}
}
