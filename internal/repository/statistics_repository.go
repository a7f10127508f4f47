package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// コース別売上の1行。
type CourseRevenueRow struct {
	CourseID    int64           `json:"course_id"`
	CourseTitle string          `json:"course_title"`
	Revenue     decimal.Decimal `json:"revenue"`
	OrderCount  int64           `json:"order_count"`
}

// 講師別の集計。
type InstructorStatRow struct {
	InstructorID   int64  `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	CourseCount    int64  `json:"course_count"`
}

// ダッシュボード用の集計はDB側で計算する。
type StatisticsRepository interface {
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
	RevenueByCourse(ctx context.Context) ([]CourseRevenueRow, error)
	NewestOrders(ctx context.Context, limit int) ([]model.Order, error)
	CountUsers(ctx context.Context) (int64, error)
	InstructorStats(ctx context.Context) ([]InstructorStatRow, error)
}
