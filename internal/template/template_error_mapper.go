package template

import (
	"errors"
	"strings"

	templateerrors "go-grafik/internal/template/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return templateerrors.ErrTemplateNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_template_group_name" {
			return templateerrors.ErrTemplateAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_template_group_name") {
		return templateerrors.ErrTemplateAlreadyExists
	}
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "schedule_templates.") {
		return templateerrors.ErrTemplateAlreadyExists
	}

	return err
}
