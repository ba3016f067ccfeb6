package roster

import (
	"errors"
	"strings"

	rostererrors "go-grafik/internal/roster/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rostererrors.ErrSkillNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_skill_name_key" {
			return rostererrors.ErrSkillAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_skill_name_key") {
		return rostererrors.ErrSkillAlreadyExists
	}
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "skills.name_key") {
		return rostererrors.ErrSkillAlreadyExists
	}

	return err
}
