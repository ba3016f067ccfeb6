package rostererrors

import (
	"net/http"

	"go-grafik/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same name already exists",
		http.StatusConflict,
	)
	ErrEmployeeExistsInTarget = apperror.New(
		apperror.CodeConflict,
		"Employee with the same name already exists in the target group",
		http.StatusConflict,
	)
	ErrTargetGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"Target group not found",
		http.StatusNotFound,
	)
	ErrSameGroup = apperror.New(
		apperror.CodeInvalidInput,
		"Target group must differ from the current group",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Name is required",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid email format",
		http.StatusBadRequest,
	)
	ErrInvalidExamDate = apperror.New(
		apperror.CodeInvalidInput,
		"Medical exam date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrSkillNotFound = apperror.New(
		apperror.CodeNotFound,
		"Skill not found",
		http.StatusNotFound,
	)
	ErrSkillAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Skill already exists",
		http.StatusConflict,
	)
	ErrInvalidCSV = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid profile CSV",
		http.StatusBadRequest,
	)
)
