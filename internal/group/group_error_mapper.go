package group

import (
	"errors"
	"strings"

	grouperrors "go-grafik/internal/group/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return grouperrors.ErrGroupNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_group_name" {
			return grouperrors.ErrGroupAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_group_name") {
		return grouperrors.ErrGroupAlreadyExists
	}
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "schedule_groups.name") {
		return grouperrors.ErrGroupAlreadyExists
	}

	return err
}
