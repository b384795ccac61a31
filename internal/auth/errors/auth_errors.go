package errors

import "go-teamplanner/internal/shared/apperror"

var (
	ErrInvalidCredentials     = apperror.New(apperror.CodeInvalidInput, "invalid email or password", 401)
	ErrInvalidToken           = apperror.New("INVALID_TOKEN", "token is invalid", 401)
	ErrTokenExpired           = apperror.New("TOKEN_EXPIRED", "token has expired", 401)
	ErrInvalidRefreshToken    = apperror.New("INVALID_REFRESH_TOKEN", "refresh token is invalid or expired", 401)
	ErrInvalidUserID          = apperror.New(apperror.CodeInvalidInput, "invalid user id", 400)
	ErrUserNotFound           = apperror.New(apperror.CodeNotFound, "user not found", 404)
	ErrTokenGenerationFailed  = apperror.New(apperror.CodeInternalError, "failed to generate token", 500)
	ErrEmailAlreadyRegistered = apperror.New(apperror.CodeConflict, "this email is already registered", 409)
	ErrForbidden              = apperror.New("FORBIDDEN", "you do not have permission to perform this action", 403)
)
