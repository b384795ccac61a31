package team

import (
	"errors"
	"strings"

	teamerrors "go-teamplanner/internal/team/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return teamerrors.ErrTeamNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_teams_company_name" {
			return teamerrors.ErrTeamNameAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_teams_company_name") {
		return teamerrors.ErrTeamNameAlreadyExists
	}

	return err
}
