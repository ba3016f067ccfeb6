package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"go-grafik/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("plain app error", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
		assert.Nil(t, got.Details)
	})

	t.Run("wrapped app error keeps context", func(t *testing.T) {
		err := fmt.Errorf("month %q: %w", "Foo", apperror.ErrInvalidInput)
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, apperror.CodeInvalidInput, got.Code)
		assert.Contains(t, got.Details, "Foo")
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
	})
}

func TestAppError_Detailf(t *testing.T) {
	err := apperror.ErrNotFound.Detailf("no group %q", "Ghost")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, `Resource not found. no group "Ghost"`, err.Error())

	got := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, apperror.CodeNotFound, got.Code)
	assert.Equal(t, err.Message, got.Message)
	assert.Nil(t, got.Details)
}

func TestAppError_ErrorWithCause(t *testing.T) {
	err := &apperror.AppError{Code: apperror.CodeInternalError, Message: "export failed", Err: errors.New("disk full")}
	assert.Equal(t, "export failed: disk full", err.Error())
	assert.Equal(t, "disk full", apperror.ToHTTP(err).Details)
}

type sample struct {
	FromMonth string `json:"from_month" validate:"required"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("json") })
	err := v.Struct(sample{})

	mapped := apperror.MapValidationError(err)
	var appErr *apperror.AppError
	assert.True(t, errors.As(mapped, &appErr))
	assert.Equal(t, "From Month is required", appErr.Message)
}
