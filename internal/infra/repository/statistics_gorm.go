package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatisticsGormRepository struct {
	db *gorm.DB
}

func NewStatisticsGormRepository(db *gorm.DB) *StatisticsGormRepository {
	return &StatisticsGormRepository{db: db}
}

// COMPLETEDな決済の合計。
func (r *StatisticsGormRepository) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0) AS total FROM payments WHERE status = ?`,
			model.PaymentStatusCompleted).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// 支払い済み注文の明細をコース単位で集計。
func (r *StatisticsGormRepository) RevenueByCourse(ctx context.Context) ([]repo.CourseRevenueRow, error) {
	var rows []repo.CourseRevenueRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT oi.course_id        AS course_id,
		            oi.course_title_snapshot AS course_title,
		            COALESCE(SUM(oi.price), 0) AS revenue,
		            COUNT(DISTINCT oi.order_id) AS order_count
		     FROM order_items oi
		     JOIN orders o ON o.id = oi.order_id
		     WHERE o.payment_status = ?
		     GROUP BY oi.course_id, oi.course_title_snapshot
		     ORDER BY revenue DESC`,
			model.PaymentStatusCompleted).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StatisticsGormRepository) NewestOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *StatisticsGormRepository) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *StatisticsGormRepository) InstructorStats(ctx context.Context) ([]repo.InstructorStatRow, error) {
	var rows []repo.InstructorStatRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT u.id        AS instructor_id,
		            u.full_name AS instructor_name,
		            COUNT(ci.course_id) AS course_count
		     FROM users u
		     JOIN course_instructors ci ON ci.user_id = u.id
		     GROUP BY u.id, u.full_name
		     ORDER BY course_count DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
