package teamerrors

import (
	"net/http"

	"go-teamplanner/internal/shared/apperror"
)

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"team not found",
		http.StatusNotFound,
	)
	ErrTeamNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a team with this name already exists",
		http.StatusConflict,
	)
	ErrTeamNotEmpty = apperror.New(
		apperror.CodeInvalidState,
		"team still has members assigned",
		http.StatusConflict,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrMemberNotInTeam = apperror.New(
		apperror.CodeNotFound,
		"employee is not a member of this team",
		http.StatusNotFound,
	)
)
