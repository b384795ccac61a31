package notificationerrors

import (
	"net/http"

	"go-teamplanner/internal/shared/apperror"
)

var (
	ErrUnknownKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown notification kind",
		http.StatusBadRequest,
	)
	ErrInvalidRecipient = apperror.New(
		apperror.CodeInvalidInput,
		"invalid recipient id",
		http.StatusBadRequest,
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
)
