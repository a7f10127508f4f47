package validator_test

import (
	"testing"

	"app/internal/usecase"
	"app/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateCreate_MissingUserID(t *testing.T) {
	v := validator.NewOrderValidator()

	err := v.ValidateCreate(usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{CourseID: 1, Price: decimal.NewFromInt(100)}},
	})

	assert.ErrorIs(t, err, validator.ErrMissingUserID)
}

func TestValidateItems_Empty(t *testing.T) {
	v := validator.NewOrderValidator()

	err := v.ValidateItems(nil)
	assert.ErrorIs(t, err, validator.ErrEmptyItems)

	err = v.ValidateItems([]usecase.OrderItemInput{})
	assert.ErrorIs(t, err, validator.ErrEmptyItems)
}

func TestValidateItems_MissingCourseID(t *testing.T) {
	v := validator.NewOrderValidator()

	err := v.ValidateItems([]usecase.OrderItemInput{{CourseID: 0, Price: decimal.NewFromInt(100)}})
	assert.ErrorIs(t, err, validator.ErrMissingCourseID)
}

func TestValidateItems_NegativePrice(t *testing.T) {
	v := validator.NewOrderValidator()

	err := v.ValidateItems([]usecase.OrderItemInput{{CourseID: 1, Price: decimal.NewFromInt(-1)}})
	assert.ErrorIs(t, err, validator.ErrNegativePrice)
}

func TestValidateItems_ZeroPriceAllowed(t *testing.T) {
	v := validator.NewOrderValidator()

	// 無料コースは価格0で通す
	err := v.ValidateItems([]usecase.OrderItemInput{{CourseID: 1, Price: decimal.Zero}})
	assert.NoError(t, err)
}
