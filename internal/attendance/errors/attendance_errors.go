package attendanceerrors

import (
	"net/http"

	"go-grafik/internal/shared/apperror"
)

var (
	ErrMissingFields = apperror.New(
		apperror.CodeInvalidInput,
		"Missing required fields",
		http.StatusBadRequest,
	)
	ErrDayOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Day is outside of the month",
		http.StatusBadRequest,
	)
	ErrInvalidCSV = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance CSV",
		http.StatusBadRequest,
	)
	ErrInvalidDocument = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance document",
		http.StatusBadRequest,
	)
)
