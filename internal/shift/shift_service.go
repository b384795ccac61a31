package shift

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-teamplanner/internal/calendar"
	"go-teamplanner/internal/employee"
	"go-teamplanner/internal/notification"
	shifterrors "go-teamplanner/internal/shift/errors"
	"go-teamplanner/internal/shared/contextutil"
)

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateShiftRequest) (ShiftResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ShiftResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Cancel(ctx context.Context, companyID, id string) (ShiftResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	CreateTemplate(ctx context.Context, companyID string, req CreateTemplateRequest) (TemplateResponse, error)
	GetTemplates(ctx context.Context, companyID string) ([]TemplateResponse, error)
}

// EmployeeDirectory is the slice of the employee repository the shift
// service needs to resolve assignees and their email addresses.
type EmployeeDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	notifier  notification.Dispatcher
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	notifier notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		notifier:  notifier,
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateShiftRequest,
) (ShiftResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create shift requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	startAt, endAt, err := parseShiftRange(req.StartAt, req.EndAt)
	if err != nil {
		s.logger.Warn("create shift invalid time range",
			zap.String("start_at", req.StartAt),
			zap.String("end_at", req.EndAt),
			zap.Error(err),
		)
		return ShiftResponse{}, err
	}

	assignee, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrEmployeeNotInCompany
		}
		s.logger.Error("create shift employee lookup failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create shift begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlapping, err := qtx.FindOverlapping(ctx, companyID, req.EmployeeID, startAt, endAt)
	if err != nil {
		s.logger.Error("create shift overlap check failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	if len(overlapping) > 0 {
		s.logger.Warn("create shift rejected for double booking",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("overlapping", len(overlapping)),
		)
		return ShiftResponse{}, shifterrors.ErrShiftOverlap
	}

	sh := &Shift{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		EmployeeID: assignee.ID,
		TemplateID: uuidPtrFromOptional(req.TemplateID),
		ScheduleID: uuidPtrFromOptional(req.ScheduleID),
		StartAt:    startAt,
		EndAt:      endAt,
		Status:     StatusScheduled,
		Notes:      req.Notes,
	}

	if err := qtx.Create(ctx, sh); err != nil {
		s.logger.Error("create shift persist failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create shift commit failed", zap.String("request_id", rid), zap.Error(err))
		return ShiftResponse{}, err
	}

	s.notifyShift(ctx, companyID, assignee, sh, notification.KindShiftAssigned,
		"New shift assigned",
		fmt.Sprintf("You have been assigned a shift on %s from %s to %s.",
			sh.StartAt.Format("Mon, 02 Jan 2006"),
			sh.StartAt.Format("15:04"),
			sh.EndAt.Format("15:04"),
		),
		true,
	)

	s.logger.Info("create shift success",
		zap.String("request_id", rid),
		zap.String("shift_id", sh.ID.String()),
	)

	return mapToResponse(*sh), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ShiftResponse, error) {
	shifts, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all shifts failed", zap.Error(err))
		return nil, err
	}
	res := make([]ShiftResponse, len(shifts))
	for i, sh := range shifts {
		res[i] = mapToResponse(sh)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error) {
	sh, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		s.logger.Error("get shift by id failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	return mapToResponse(*sh), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateShiftRequest,
) (ShiftResponse, error) {
	startAt, endAt, err := parseShiftRange(req.StartAt, req.EndAt)
	if err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update shift begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		s.logger.Error("update shift fetch existing failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	if sh.Status == StatusCancelled {
		return ShiftResponse{}, shifterrors.ErrShiftAlreadyCancelled
	}

	overlapping, err := qtx.FindOverlapping(ctx, companyID, sh.EmployeeID.String(), startAt, endAt)
	if err != nil {
		s.logger.Error("update shift overlap check failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	for _, other := range overlapping {
		if other.ID != sh.ID {
			return ShiftResponse{}, shifterrors.ErrShiftOverlap
		}
	}

	sh.StartAt = startAt
	sh.EndAt = endAt
	sh.Notes = req.Notes

	if err := qtx.Update(ctx, sh); err != nil {
		s.logger.Error("update shift persist failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update shift commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	if assignee, lookupErr := s.employees.FindByIDAndCompany(ctx, companyID, sh.EmployeeID.String()); lookupErr == nil {
		s.notifyShift(ctx, companyID, assignee, sh, notification.KindShiftUpdated,
			"Shift updated",
			fmt.Sprintf("Your shift on %s now runs from %s to %s.",
				sh.StartAt.Format("Mon, 02 Jan 2006"),
				sh.StartAt.Format("15:04"),
				sh.EndAt.Format("15:04"),
			),
			true,
		)
	}

	s.logger.Info("update shift success", zap.String("shift_id", id))

	return mapToResponse(*sh), nil
}

func (s *service) Cancel(ctx context.Context, companyID, id string) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel shift begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		s.logger.Error("cancel shift fetch existing failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	if sh.Status == StatusCancelled {
		return ShiftResponse{}, shifterrors.ErrShiftAlreadyCancelled
	}

	sh.Status = StatusCancelled

	if err := qtx.Update(ctx, sh); err != nil {
		s.logger.Error("cancel shift persist failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel shift commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	if assignee, lookupErr := s.employees.FindByIDAndCompany(ctx, companyID, sh.EmployeeID.String()); lookupErr == nil {
		s.notifyShift(ctx, companyID, assignee, sh, notification.KindShiftCancelled,
			"Shift cancelled",
			fmt.Sprintf("Your shift on %s (%s - %s) has been cancelled.",
				sh.StartAt.Format("Mon, 02 Jan 2006"),
				sh.StartAt.Format("15:04"),
				sh.EndAt.Format("15:04"),
			),
			false,
		)
	}

	s.logger.Info("cancel shift success", zap.String("shift_id", id))

	return mapToResponse(*sh), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete shift begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete shift failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete shift commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete shift success", zap.String("shift_id", id))
	return nil
}

func (s *service) CreateTemplate(
	ctx context.Context,
	companyID string,
	req CreateTemplateRequest,
) (TemplateResponse, error) {
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		return TemplateResponse{}, shifterrors.ErrInvalidTemplateTime
	}
	if _, err := time.Parse("15:04", req.EndTime); err != nil {
		return TemplateResponse{}, shifterrors.ErrInvalidTemplateTime
	}

	shiftType := req.ShiftType
	if shiftType == "" {
		shiftType = TypeRegular
	}

	tpl := &ShiftTemplate{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		Name:      req.Name,
		ShiftType: shiftType,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := s.repo.CreateTemplate(ctx, tpl); err != nil {
		s.logger.Error("create shift template persist failed", zap.Error(err))
		return TemplateResponse{}, err
	}

	s.logger.Info("create shift template success", zap.String("template_id", tpl.ID.String()))

	return mapTemplateToResponse(*tpl), nil
}

func (s *service) GetTemplates(ctx context.Context, companyID string) ([]TemplateResponse, error) {
	templates, err := s.repo.FindTemplatesByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get shift templates failed", zap.Error(err))
		return nil, err
	}
	res := make([]TemplateResponse, len(templates))
	for i, tpl := range templates {
		res[i] = mapTemplateToResponse(tpl)
	}
	return res, nil
}

// notifyShift fans the change out to the assignee. Channel outcomes are the
// dispatcher's business; only malformed input surfaces here, and that is a
// wiring bug worth a log line, not a failed request.
func (s *service) notifyShift(
	ctx context.Context,
	companyID string,
	assignee *employee.Employee,
	sh *Shift,
	kind notification.Kind,
	title, message string,
	withInvite bool,
) {
	if s.notifier == nil {
		return
	}

	shiftID := sh.ID.String()
	in := notification.NotifyInput{
		Recipient: notification.Recipient{
			UserID: assignee.ID.String(),
			Email:  assignee.Email,
		},
		Kind:      kind,
		Title:     title,
		Message:   message,
		ShiftID:   &shiftID,
		ActionURL: "/shifts/" + shiftID,
		Email: &notification.EmailContent{
			Subject:  title,
			TextBody: message,
		},
	}
	if withInvite {
		in.Email.Attachment = &calendar.IcsEvent{
			Summary:     title,
			Description: message,
			Start:       sh.StartAt,
			End:         sh.EndAt,
		}
	}

	if _, err := s.notifier.Notify(ctx, companyID, in); err != nil {
		s.logger.Warn("shift notification rejected",
			zap.String("shift_id", shiftID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func parseShiftRange(start, end string) (time.Time, time.Time, error) {
	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, shifterrors.ErrInvalidTimeRange
	}
	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, shifterrors.ErrInvalidTimeRange
	}
	if !endAt.After(startAt) {
		return time.Time{}, time.Time{}, shifterrors.ErrInvalidTimeRange
	}
	return startAt, endAt, nil
}

func mapToResponse(sh Shift) ShiftResponse {
	return ShiftResponse{
		ID:         sh.ID.String(),
		EmployeeID: sh.EmployeeID.String(),
		TemplateID: uuidToOptional(sh.TemplateID),
		ScheduleID: uuidToOptional(sh.ScheduleID),
		StartAt:    sh.StartAt.Format(time.RFC3339),
		EndAt:      sh.EndAt.Format(time.RFC3339),
		Status:     sh.Status,
		Notes:      sh.Notes,
		CreatedAt:  sh.CreatedAt.Format(time.RFC3339),
	}
}

func mapTemplateToResponse(tpl ShiftTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        tpl.ID.String(),
		Name:      tpl.Name,
		ShiftType: tpl.ShiftType,
		StartTime: tpl.StartTime,
		EndTime:   tpl.EndTime,
	}
}

func uuidPtrFromOptional(v *string) *uuid.UUID {
	if v == nil {
		return nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToOptional(v *uuid.UUID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
