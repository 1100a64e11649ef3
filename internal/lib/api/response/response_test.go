package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=admin attendee"`
	Short string `validate:"omitempty,max=3"`
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(sample{Email: "nope", Role: "root", Short: "toolong"})
	require.Error(t, err)

	var validateErr validator.ValidationErrors
	require.True(t, errors.As(err, &validateErr))

	resp := ValidationError(validateErr)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Name is a required field")
	assert.Contains(t, resp.Error, "field Email is not a valid email")
	assert.Contains(t, resp.Error, "field Role must be one of [admin attendee]")
	assert.Contains(t, resp.Error, "field Short must be at most 3 characters")
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Response{Status: "Error", Error: "boom"}, Error("boom"))
}
