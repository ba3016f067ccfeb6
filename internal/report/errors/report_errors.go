package reporterrors

import (
	"net/http"

	"go-grafik/internal/shared/apperror"
)

var (
	ErrNoEmployees = apperror.New(
		apperror.CodeInvalidState,
		"Attendance document has no employees",
		http.StatusBadRequest,
	)
	ErrFontUnavailable = apperror.New(
		apperror.CodeInternalError,
		"Report font could not be loaded",
		http.StatusInternalServerError,
	)
)
