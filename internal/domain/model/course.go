package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusInactive CourseStatus = "inactive"
)

// durationの単位。画面によって時間/週が混在していたので単位を明示する。
type DurationUnit string

const (
	DurationUnitHours DurationUnit = "HOURS"
	DurationUnitWeeks DurationUnit = "WEEKS"
)

func (u DurationUnit) Valid() bool {
	return u == DurationUnitHours || u == DurationUnitWeeks
}

type Course struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DurationValue int             `gorm:"not null;default:0" json:"duration_value"`
	DurationUnit  DurationUnit    `gorm:"type:varchar(10);not null;default:'HOURS'" json:"duration_unit"`
	Status        CourseStatus    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StudentCount  int64           `gorm:"not null;default:0" json:"student_count"`
	CategoryID    int64           `gorm:"not null;index" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Thumbnail     string          `gorm:"type:varchar(512)" json:"thumbnail"`
	Instructors   []User          `gorm:"many2many:course_instructors" json:"instructors,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
