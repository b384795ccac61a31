package preferenceerrors

import (
	"net/http"

	"go-teamplanner/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidQuietHours = apperror.New(
		apperror.CodeInvalidInput,
		"quiet hours must be HH:MM times, both set or both empty",
		http.StatusBadRequest,
	)
)
