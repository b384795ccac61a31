package errors

import "go-teamplanner/internal/shared/apperror"

var (
	ErrEmployeeNotFound            = apperror.New(apperror.CodeNotFound, "employee not found", 404)
	ErrEmployeeEmailAlreadyExists  = apperror.New(apperror.CodeConflict, "an employee with this email already exists", 409)
	ErrEmployeeNumberAlreadyExists = apperror.New(apperror.CodeConflict, "employee number already exists", 409)
	ErrInvalidHireDate             = apperror.New(apperror.CodeInvalidInput, "invalid hire_date format, expected YYYY-MM-DD", 400)
	ErrTeamNotFound                = apperror.New(apperror.CodeNotFound, "team not found for this company", 404)
)
