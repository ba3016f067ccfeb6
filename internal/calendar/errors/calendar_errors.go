package calendarerrors

import (
	"net/http"

	"go-grafik/internal/shared/apperror"
)

// ErrInvalidCalendarInput covers an unknown month name or an unusable year.
// Reported as 404: the requested month simply does not exist.
var ErrInvalidCalendarInput = apperror.New(
	apperror.CodeInvalidCalendar,
	"Unknown month or year",
	http.StatusNotFound,
)
