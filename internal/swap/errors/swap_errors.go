package errors

import "go-teamplanner/internal/shared/apperror"

var (
	ErrSwapNotFound      = apperror.New(apperror.CodeNotFound, "swap request not found", 404)
	ErrShiftNotEligible  = apperror.New(apperror.CodeInvalidState, "shift is cancelled or does not exist", 422)
	ErrTargetNotInCompany = apperror.New(apperror.CodeNotFound, "target employee not found for this company", 404)
	ErrSelfSwap          = apperror.New(apperror.CodeInvalidInput, "cannot swap a shift with its current assignee", 400)
	ErrSwapNotPending    = apperror.New(apperror.CodeInvalidState, "swap request has already been decided", 422)
	ErrDuplicateSwap     = apperror.New(apperror.CodeConflict, "a pending swap request already exists for this shift", 409)
)
