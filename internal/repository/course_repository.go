package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type CourseRepository interface {
	// 一覧はカテゴリ・講師込みで全件返す（管理画面はページングしない）
	ListAll(ctx context.Context) ([]model.Course, error)
	FindByID(ctx context.Context, courseID int64) (model.Course, error)

	// 受講者数の増減（注文COMPLETED/取り消しで呼ばれる）
	IncreaseStudentCount(ctx context.Context, courseID int64, n int64) error
	DecreaseStudentCount(ctx context.Context, courseID int64, n int64) error
}
