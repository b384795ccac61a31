package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-teamplanner/internal/conflict"
	"go-teamplanner/internal/employee"
	leaveerrors "go-teamplanner/internal/leave/errors"
	"go-teamplanner/internal/notification"
	"go-teamplanner/internal/shared/apperror"
	"go-teamplanner/internal/shift"
	"go-teamplanner/internal/swap"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	CheckConflicts(ctx context.Context, companyID, id string) (ConflictCheckResponse, error)

	CreateType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)
}

// EmployeeDirectory resolves the employee a leave belongs to, for
// notification addressing.
type EmployeeDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	shifts    shift.Repository
	swaps     swap.Repository
	employees EmployeeDirectory
	notifier  notification.Dispatcher
	day       conflict.DayWindow
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	shifts shift.Repository,
	swaps swap.Repository,
	employees EmployeeDirectory,
	notifier notification.Dispatcher,
	day conflict.DayWindow,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if day.Start == "" || day.End == "" {
		day = conflict.DefaultDayWindow()
	}
	return &service{
		db:        db,
		repo:      repo,
		shifts:    shifts,
		swaps:     swaps,
		employees: employees,
		notifier:  notifier,
		day:       day,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, employeeUUID, createdByUUID, startDate, endDate, err := validateCreateRequest(companyID, actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := validateTimeOverrides(req.StartTime, req.EndTime); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	leaveType, err := qtx.FindTypeByIDAndCompany(ctx, companyID, req.TypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		s.logger.Error("create leave type lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !leaveType.IsActive {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeInactive
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave employee company check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("company_id", companyID),
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	if totalDays > leaveType.DefaultDays {
		return LeaveResponse{}, leaveerrors.ErrAllowanceExceeded
	}

	l := &Leave{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		TypeID:     leaveType.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  createdByUUID,
	}

	// No-approval types go straight to APPROVED, but only when nothing on
	// the roster is in the way; otherwise the request waits for a planner.
	autoApproved := false
	if !leaveType.RequiresApproval {
		resolver := conflict.NewResolver(s.shifts.WithTx(tx), s.swaps.WithTx(tx), s.day, s.logger)
		ok, _, err := resolver.CanBeApproved(ctx, companyID, req.EmployeeID, leaveWindow(l))
		if err != nil {
			s.logger.Error("create leave conflict check failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if ok {
			now := time.Now().UTC()
			l.Status = StatusApproved
			l.ApprovedBy = &createdByUUID
			l.ApprovedAt = &now
			autoApproved = true
		}
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	kind := notification.KindLeaveSubmitted
	title := "Leave request submitted"
	message := fmt.Sprintf("Your leave request for %s to %s has been submitted.",
		l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"))
	if autoApproved {
		kind = notification.KindLeaveApproved
		title = "Leave approved"
		message = fmt.Sprintf("Your leave from %s to %s has been approved.",
			l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"))
	}
	s.notifyLeave(ctx, companyID, l, kind, title, message)

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Bool("auto_approved", autoApproved),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// Update edits the window of a still-pending request. Decided requests are
// immutable; cancel and resubmit instead.
func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if err := validateTimeOverrides(req.StartTime, req.EndTime); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, l.EmployeeID.String(), startDate, endDate, &id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l.StartDate = startDate
	l.EndDate = endDate
	l.StartTime = req.StartTime
	l.EndTime = req.EndTime
	l.TotalDays = int(endDate.Sub(startDate).Hours()/24) + 1
	l.Reason = req.Reason

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

// Approve flips a pending request to APPROVED. The shift-conflict gate runs
// inside the same transaction that writes the status, so a swap decided in
// between cannot produce an approval against a stale roster.
func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !isAllowedStatusTransition(l.Status, StatusApproved) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	resolver := conflict.NewResolver(s.shifts.WithTx(tx), s.swaps.WithTx(tx), s.day, s.logger)
	ok, unresolved, err := resolver.CanBeApproved(ctx, companyID, l.EmployeeID.String(), leaveWindow(l))
	if err != nil {
		s.logger.Error("approve leave conflict check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		msg := conflict.BlockingMessage(unresolved)
		s.logger.Warn("approve leave blocked by conflicts",
			zap.String("leave_id", id),
			zap.Int("unresolved", len(unresolved)),
		)
		return LeaveResponse{}, apperror.New(apperror.CodeConflict, msg, http.StatusConflict)
	}

	now := time.Now().UTC()
	l.Status = StatusApproved
	l.ApprovedBy = &actorUUID
	l.ApprovedAt = &now
	l.RejectionReason = nil

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.notifyLeave(ctx, companyID, l, notification.KindLeaveApproved,
		"Leave approved",
		fmt.Sprintf("Your leave from %s to %s has been approved.",
			l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02")),
	)

	s.logger.Info("approve leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveResponse, error) {
	if rejectionReason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	l, err := s.transition(ctx, companyID, actorID, id, StatusRejected, &rejectionReason)
	if err != nil {
		return LeaveResponse{}, err
	}

	s.notifyLeave(ctx, companyID, l, notification.KindLeaveRejected,
		"Leave rejected",
		fmt.Sprintf("Your leave request for %s to %s was rejected: %s",
			l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), rejectionReason),
	)

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	l, err := s.transition(ctx, companyID, actorID, id, StatusCancelled, nil)
	if err != nil {
		return LeaveResponse{}, err
	}

	s.notifyLeave(ctx, companyID, l, notification.KindLeaveCancelled,
		"Leave cancelled",
		fmt.Sprintf("The leave from %s to %s has been cancelled.",
			l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02")),
	)

	return mapToResponse(*l), nil
}

func (s *service) transition(ctx context.Context, companyID, actorID, id, targetStatus string, rejectionReason *string) (*Leave, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return nil, leaveerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	if !isAllowedStatusTransition(l.Status, targetStatus) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return nil, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = targetStatus
	switch targetStatus {
	case StatusRejected:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = rejectionReason
	case StatusCancelled:
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed", zap.String("leave_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)
	return l, nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

// CheckConflicts is the read-only preview planners call before deciding.
func (s *service) CheckConflicts(ctx context.Context, companyID, id string) (ConflictCheckResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConflictCheckResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return ConflictCheckResponse{}, err
	}

	resolver := conflict.NewResolver(s.shifts, s.swaps, s.day, s.logger)
	conflicts, err := resolver.FindConflictingShifts(ctx, companyID, l.EmployeeID.String(), leaveWindow(l))
	if err != nil {
		return ConflictCheckResponse{}, err
	}

	resp := ConflictCheckResponse{
		CanBeApproved: true,
		Conflicts:     make([]ConflictShiftResponse, 0, len(conflicts)),
	}
	unresolved := make([]shift.Shift, 0, len(conflicts))
	for _, sh := range conflicts {
		resolved, err := s.swaps.HasApprovedSwapForShift(ctx, companyID, sh.ID.String())
		if err != nil {
			return ConflictCheckResponse{}, err
		}
		resp.Conflicts = append(resp.Conflicts, ConflictShiftResponse{
			ShiftID:  sh.ID.String(),
			StartAt:  sh.StartAt.Format(time.RFC3339),
			EndAt:    sh.EndAt.Format(time.RFC3339),
			Resolved: resolved,
		})
		if !resolved {
			unresolved = append(unresolved, sh)
		}
	}
	if len(unresolved) > 0 {
		resp.CanBeApproved = false
		resp.Message = conflict.BlockingMessage(unresolved)
	}
	return resp, nil
}

func (s *service) CreateType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidCompanyID
	}

	t := &LeaveType{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		Name:             req.Name,
		DefaultDays:      req.DefaultDays,
		RequiresApproval: req.RequiresApproval == nil || *req.RequiresApproval,
		IsPaid:           req.IsPaid == nil || *req.IsPaid,
		IsActive:         true,
	}

	if err := s.repo.CreateType(ctx, t); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success", zap.String("type_id", t.ID.String()))

	return mapTypeToResponse(*t), nil
}

func (s *service) GetTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindTypesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapTypeToResponse(t)
	}
	return res, nil
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusCancelled
	case StatusApproved:
		return targetStatus == StatusCancelled
	default:
		return false
	}
}

func leaveWindow(l *Leave) conflict.Window {
	return conflict.Window{
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		StartTime: l.StartTime,
		EndTime:   l.EndTime,
	}
}

func (s *service) notifyLeave(ctx context.Context, companyID string, l *Leave, kind notification.Kind, title, message string) {
	if s.notifier == nil {
		return
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, l.EmployeeID.String())
	if err != nil {
		s.logger.Warn("leave notification recipient lookup failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return
	}

	leaveID := l.ID.String()
	in := notification.NotifyInput{
		Recipient: notification.Recipient{
			UserID: emp.ID.String(),
			Email:  emp.Email,
		},
		Kind:      kind,
		Title:     title,
		Message:   message,
		LeaveID:   &leaveID,
		ActionURL: "/leaves/" + leaveID,
		Email: &notification.EmailContent{
			Subject:  title,
			TextBody: message,
		},
	}

	if _, err := s.notifier.Notify(ctx, companyID, in); err != nil {
		s.logger.Warn("leave notification rejected",
			zap.String("leave_id", leaveID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func validateCreateRequest(companyID, actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return companyUUID, employeeUUID, createdByUUID, startDate, endDate, nil
}

func validateTimeOverrides(startTime, endTime *string) error {
	for _, v := range []*string{startTime, endTime} {
		if v == nil {
			continue
		}
		if _, err := time.Parse("15:04", *v); err != nil {
			return conflict.ErrInvalidTimeOfDay
		}
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		CompanyID:  l.CompanyID.String(),
		EmployeeID: l.EmployeeID.String(),
		TypeID:     l.TypeID.String(),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		StartTime:  l.StartTime,
		EndTime:    l.EndTime,
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedBy:  l.CreatedBy.String(),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapTypeToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:               t.ID.String(),
		Name:             t.Name,
		DefaultDays:      t.DefaultDays,
		RequiresApproval: t.RequiresApproval,
		IsPaid:           t.IsPaid,
		IsActive:         t.IsActive,
	}
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
