package templateerrors

import (
	"net/http"

	"go-grafik/internal/shared/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Template not found",
		http.StatusNotFound,
	)
	ErrTemplateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Template with this name already exists",
		http.StatusConflict,
	)
	ErrTemplateNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Name is required",
		http.StatusBadRequest,
	)
	ErrInvalidPositions = apperror.New(
		apperror.CodeInvalidInput,
		"Positions must be a non-empty list of non-blank strings",
		http.StatusBadRequest,
	)
)
