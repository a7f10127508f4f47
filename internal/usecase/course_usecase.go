package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/search"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type CourseUsecase struct {
	courseRepo repo.CourseRepository
}

// DI
func NewCourseUsecase(courseRepo repo.CourseRepository) *CourseUsecase {
	return &CourseUsecase{courseRepo: courseRepo}
}

// GET /coursesの入力DTO
type ListCoursesInput struct {
	Q string
}

type InstructorOutput struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type CourseOutput struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Price         decimal.Decimal    `json:"price"`
	DurationValue int                `json:"duration_value"`
	DurationUnit  string             `json:"duration_unit"`
	Status        string             `json:"status"`
	StudentCount  int64              `json:"student_count"`
	Thumbnail     string             `json:"thumbnail,omitempty"`
	Category      *model.Category    `json:"category,omitempty"`
	Instructors   []InstructorOutput `json:"instructors"`
	CreatedAt     time.Time          `json:"created_at"`
}

// 一覧は全件ロードしてからタイトルの部分一致で絞る（管理画面の検索仕様）。
func (u *CourseUsecase) List(ctx context.Context, in ListCoursesInput) ([]CourseOutput, error) {
	if len(in.Q) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid q")
	}

	courses, err := u.courseRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	filtered := search.Filter(courses, in.Q, func(c model.Course) string { return c.Title })

	out := make([]CourseOutput, 0, len(filtered))
	for i := range filtered {
		out = append(out, toCourseOutput(&filtered[i]))
	}
	return out, nil
}

func (u *CourseUsecase) GetDetail(ctx context.Context, courseID int64) (CourseOutput, error) {
	if courseID <= 0 {
		return CourseOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.courseRepo.FindByID(ctx, courseID)
	if err == repo.ErrNotFound {
		return CourseOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CourseOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCourseOutput(&c), nil
}

func toCourseOutput(c *model.Course) CourseOutput {
	instructors := make([]InstructorOutput, 0, len(c.Instructors))
	for _, ins := range c.Instructors {
		instructors = append(instructors, InstructorOutput{
			ID:       ins.ID,
			FullName: ins.FullName,
			Email:    ins.Email,
		})
	}

	return CourseOutput{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Price:         c.Price,
		DurationValue: c.DurationValue,
		DurationUnit:  string(c.DurationUnit),
		Status:        string(c.Status),
		StudentCount:  c.StudentCount,
		Thumbnail:     c.Thumbnail,
		Category:      c.Category,
		Instructors:   instructors,
		CreatedAt:     c.CreatedAt,
	}
}
