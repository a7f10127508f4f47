package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CourseGormRepository struct {
	db *gorm.DB
}

func NewCourseGormRepository(db *gorm.DB) *CourseGormRepository {
	return &CourseGormRepository{db: db}
}

func (r *CourseGormRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	var items []model.Course
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Instructors").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Course{}, err
	}
	return items, nil
}

func (r *CourseGormRepository) FindByID(ctx context.Context, courseID int64) (model.Course, error) {
	var c model.Course
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Instructors").
		Where("id = ?", courseID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Course{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Course{}, err
	}
	return c, nil
}

func (r *CourseGormRepository) IncreaseStudentCount(ctx context.Context, courseID int64, n int64) error {
	res := r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ?", courseID).
		UpdateColumn("student_count", gorm.Expr("student_count + ?", n))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CourseGormRepository) DecreaseStudentCount(ctx context.Context, courseID int64, n int64) error {
	// 0未満にはしない
	res := r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ?", courseID).
		UpdateColumn("student_count", gorm.Expr("GREATEST(student_count - ?, 0)", n))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
