package errors

import "go-teamplanner/internal/shared/apperror"

var (
	ErrRoleNotFound  = apperror.New(apperror.CodeNotFound, "role not found", 404)
	ErrRoleNameTaken = apperror.New(apperror.CodeConflict, "a role with this name already exists for the company", 409)
)
