package employee

import (
	"errors"
	"strings"

	employeeerrors "go-teamplanner/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "idx_employees_company_number":
				return employeeerrors.ErrEmployeeNumberAlreadyExists
			case "idx_employees_company_email":
				return employeeerrors.ErrEmployeeEmailAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_employees_company_number") {
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_employees_company_email") {
		return employeeerrors.ErrEmployeeEmailAlreadyExists
	}

	return err
}
