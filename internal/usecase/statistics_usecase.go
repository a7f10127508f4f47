package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type StatisticsUsecase struct {
	statsRepo repo.StatisticsRepository
}

func NewStatisticsUsecase(statsRepo repo.StatisticsRepository) *StatisticsUsecase {
	return &StatisticsUsecase{statsRepo: statsRepo}
}

type RevenueOutput struct {
	Total decimal.Decimal `json:"total"`
}

type UserCountOutput struct {
	Total int64 `json:"total"`
}

type InstructorStatsOutput struct {
	Total       int64                    `json:"total"`
	Instructors []repo.InstructorStatRow `json:"instructors"`
}

func (u *StatisticsUsecase) Revenue(ctx context.Context) (RevenueOutput, error) {
	total, err := u.statsRepo.RevenueTotal(ctx)
	if err != nil {
		return RevenueOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return RevenueOutput{Total: total}, nil
}

func (u *StatisticsUsecase) RevenueByCourse(ctx context.Context) ([]repo.CourseRevenueRow, error) {
	rows, err := u.statsRepo.RevenueByCourse(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// 新着注文（ダッシュボード用、明細は含めない）
func (u *StatisticsUsecase) NewestOrders(ctx context.Context, limit int) ([]OrderOutput, error) {
	orders, err := u.statsRepo.NewestOrders(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]OrderOutput, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderOutput(orders[i], nil))
	}
	return out, nil
}

func (u *StatisticsUsecase) Users(ctx context.Context) (UserCountOutput, error) {
	total, err := u.statsRepo.CountUsers(ctx)
	if err != nil {
		return UserCountOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return UserCountOutput{Total: total}, nil
}

func (u *StatisticsUsecase) Instructors(ctx context.Context) (InstructorStatsOutput, error) {
	rows, err := u.statsRepo.InstructorStats(ctx)
	if err != nil {
		return InstructorStatsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return InstructorStatsOutput{
		Total:       int64(len(rows)),
		Instructors: rows,
	}, nil
}
