package grouperrors

import (
	"net/http"

	"go-grafik/internal/shared/apperror"
)

var (
	ErrGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"Group not found",
		http.StatusNotFound,
	)
	ErrGroupAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Group with the same name already exists",
		http.StatusConflict,
	)
	ErrGroupNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Group name is required",
		http.StatusBadRequest,
	)
)
