package notificationerrors

import (
	"net/http"
	"strings"

	"go-grafik/internal/shared/apperror"
)

var (
	ErrNoRecipients = apperror.New(
		apperror.CodeInvalidInput,
		"No valid e-mail addresses in profiles",
		http.StatusBadRequest,
	)
	ErrInvalidHeader = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid e-mail header",
		http.StatusBadRequest,
	)
)

// NoRecipients names the employees whose profiles lack a usable address.
// errors.Is still matches ErrNoRecipients.
func NoRecipients(missing []string) error {
	if len(missing) == 0 {
		return ErrNoRecipients
	}
	return ErrNoRecipients.Detailf("Missing e-mail for: %s", strings.Join(missing, ", "))
}
