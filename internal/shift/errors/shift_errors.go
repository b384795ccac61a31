package errors

import "go-teamplanner/internal/shared/apperror"

var (
	ErrShiftNotFound         = apperror.New(apperror.CodeNotFound, "shift not found", 404)
	ErrTemplateNotFound      = apperror.New(apperror.CodeNotFound, "shift template not found", 404)
	ErrInvalidTimeRange      = apperror.New(apperror.CodeInvalidInput, "end_at must be after start_at", 400)
	ErrEmployeeNotInCompany  = apperror.New(apperror.CodeNotFound, "employee not found for this company", 404)
	ErrShiftOverlap          = apperror.New(apperror.CodeConflict, "employee already has a shift in this period", 409)
	ErrShiftAlreadyCancelled = apperror.New(apperror.CodeInvalidState, "shift is already cancelled", 422)
	ErrInvalidTemplateTime   = apperror.New(apperror.CodeInvalidInput, "template times must be HH:MM", 400)
)
