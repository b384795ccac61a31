package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-teamplanner/internal/conflict"
	"go-teamplanner/internal/employee"
	"go-teamplanner/internal/leave"
	leaveerrors "go-teamplanner/internal/leave/errors"
	"go-teamplanner/internal/notification"
	"go-teamplanner/internal/shared/apperror"
	"go-teamplanner/internal/shift"
	"go-teamplanner/internal/swap"
)

type fakeLeaveRepository struct {
	withTxFn                 func(tx *sql.Tx) leave.Repository
	createFn                 func(ctx context.Context, l *leave.Leave) error
	findAllByCompanyFn       func(ctx context.Context, companyID string) ([]leave.Leave, error)
	findAllByEmployeeFn      func(ctx context.Context, companyID, employeeID string) ([]leave.Leave, error)
	findByIDAndCompanyFn     func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	updateFn                 func(ctx context.Context, l *leave.Leave) error
	deleteFn                 func(ctx context.Context, companyID, id string) error
	employeeBelongsToCompany func(ctx context.Context, companyID, employeeID string) (bool, error)
	hasOverlappingPeriodFn   func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	createTypeFn             func(ctx context.Context, t *leave.LeaveType) error
	findTypesByCompanyFn     func(ctx context.Context, companyID string) ([]leave.LeaveType, error)
	findTypeByIDFn           func(ctx context.Context, companyID, id string) (*leave.LeaveType, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllByCompany(ctx context.Context, companyID string) ([]leave.Leave, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]leave.Leave, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeLeaveRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.employeeBelongsToCompany != nil {
		return f.employeeBelongsToCompany(ctx, companyID, employeeID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) CreateType(ctx context.Context, t *leave.LeaveType) error {
	if f.createTypeFn != nil {
		return f.createTypeFn(ctx, t)
	}
	return nil
}

func (f *fakeLeaveRepository) FindTypesByCompany(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	if f.findTypesByCompanyFn != nil {
		return f.findTypesByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindTypeByIDAndCompany(ctx context.Context, companyID, id string) (*leave.LeaveType, error) {
	if f.findTypeByIDFn != nil {
		return f.findTypeByIDFn(ctx, companyID, id)
	}
	return &leave.LeaveType{
		ID:               uuid.New(),
		Name:             "Annual",
		DefaultDays:      25,
		RequiresApproval: true,
		IsPaid:           true,
		IsActive:         true,
	}, nil
}

type fakeShiftStore struct {
	withTxFn          func(tx *sql.Tx) shift.Repository
	findOverlappingFn func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error)
}

func (f *fakeShiftStore) WithTx(tx *sql.Tx) shift.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeShiftStore) Create(ctx context.Context, s *shift.Shift) error { return nil }

func (f *fakeShiftStore) FindAllByCompany(ctx context.Context, companyID string) ([]shift.Shift, error) {
	return nil, nil
}

func (f *fakeShiftStore) FindByIDAndCompany(ctx context.Context, companyID, id string) (*shift.Shift, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShiftStore) Update(ctx context.Context, s *shift.Shift) error { return nil }

func (f *fakeShiftStore) Delete(ctx context.Context, companyID, id string) error { return nil }

func (f *fakeShiftStore) FindOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
	if f.findOverlappingFn != nil {
		return f.findOverlappingFn(ctx, companyID, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeShiftStore) CreateTemplate(ctx context.Context, t *shift.ShiftTemplate) error {
	return nil
}

func (f *fakeShiftStore) FindTemplatesByCompany(ctx context.Context, companyID string) ([]shift.ShiftTemplate, error) {
	return nil, nil
}

func (f *fakeShiftStore) FindTemplateByIDAndCompany(ctx context.Context, companyID, id string) (*shift.ShiftTemplate, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeSwapStore struct {
	withTxFn      func(tx *sql.Tx) swap.Repository
	hasApprovedFn func(ctx context.Context, companyID, shiftID string) (bool, error)
}

func (f *fakeSwapStore) WithTx(tx *sql.Tx) swap.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSwapStore) Create(ctx context.Context, sr *swap.SwapRequest) error { return nil }

func (f *fakeSwapStore) FindAllByCompany(ctx context.Context, companyID string) ([]swap.SwapRequest, error) {
	return nil, nil
}

func (f *fakeSwapStore) FindByIDAndCompany(ctx context.Context, companyID, id string) (*swap.SwapRequest, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSwapStore) Update(ctx context.Context, sr *swap.SwapRequest) error { return nil }

func (f *fakeSwapStore) HasApprovedSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error) {
	if f.hasApprovedFn != nil {
		return f.hasApprovedFn(ctx, companyID, shiftID)
	}
	return false, nil
}

func (f *fakeSwapStore) HasPendingSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error) {
	return false, nil
}

type fakeEmployeeDirectory struct {
	findFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeDirectory) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findFn != nil {
		return f.findFn(ctx, companyID, id)
	}
	return &employee.Employee{ID: uuid.New(), Email: "someone@example.com"}, nil
}

type fakeDispatcher struct {
	notifyFn func(ctx context.Context, companyID string, in notification.NotifyInput) (notification.Result, error)
}

func (f *fakeDispatcher) Notify(ctx context.Context, companyID string, in notification.NotifyInput) (notification.Result, error) {
	if f.notifyFn != nil {
		return f.notifyFn(ctx, companyID, in)
	}
	return notification.Result{}, nil
}

func (f *fakeDispatcher) NotifyMany(ctx context.Context, companyID string, recipients []notification.Recipient, in notification.NotifyInput) (notification.BatchResult, error) {
	return notification.BatchResult{}, nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	shifts   *fakeShiftStore
	swaps    *fakeSwapStore
	notifier *fakeDispatcher
	emps     *fakeEmployeeDirectory
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	shifts := &fakeShiftStore{}
	swaps := &fakeSwapStore{}
	emps := &fakeEmployeeDirectory{}
	notifier := &fakeDispatcher{}

	svc := leave.NewService(db, repo, shifts, swaps, emps, notifier, conflict.DefaultDayWindow())

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		shifts:   shifts,
		swaps:    swaps,
		emps:     emps,
		notifier: notifier,
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()
	typeID := uuid.New().String()

	t.Run("success notifies the employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var dispatched *notification.NotifyInput
		deps.notifier.notifyFn = func(ctx context.Context, companyID string, in notification.NotifyInput) (notification.Result, error) {
			dispatched = &in
			return notification.Result{InApp: true}, nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartDate:  "2026-06-10",
			EndDate:    "2026-06-12",
			Reason:     "family visit",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		if assert.NotNil(t, dispatched) {
			assert.Equal(t, notification.KindLeaveSubmitted, dispatched.Kind)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlapping leave rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartDate:  "2026-06-10",
			EndDate:    "2026-06-12",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("allowance exceeded rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findTypeByIDFn = func(ctx context.Context, companyID, id string) (*leave.LeaveType, error) {
			return &leave.LeaveType{ID: uuid.New(), Name: "Short", DefaultDays: 2, RequiresApproval: true, IsActive: true}, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartDate:  "2026-06-10",
			EndDate:    "2026-06-14",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrAllowanceExceeded)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no-approval type auto approves on a clear roster", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findTypeByIDFn = func(ctx context.Context, companyID, id string) (*leave.LeaveType, error) {
			return &leave.LeaveType{ID: uuid.New(), Name: "Comp day", DefaultDays: 25, RequiresApproval: false, IsActive: true}, nil
		}

		var dispatched *notification.NotifyInput
		deps.notifier.notifyFn = func(ctx context.Context, companyID string, in notification.NotifyInput) (notification.Result, error) {
			dispatched = &in
			return notification.Result{InApp: true}, nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartDate:  "2026-06-10",
			EndDate:    "2026-06-10",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedAt)
		if assert.NotNil(t, dispatched) {
			assert.Equal(t, notification.KindLeaveApproved, dispatched.Kind)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("inactive leave type rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findTypeByIDFn = func(ctx context.Context, companyID, id string) (*leave.LeaveType, error) {
			return &leave.LeaveType{ID: uuid.New(), Name: "Legacy", DefaultDays: 10, IsActive: false}, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			TypeID:     typeID,
			StartDate:  "2026-06-10",
			EndDate:    "2026-06-10",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveTypeInactive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	leaveID := uuid.New()
	employeeID := uuid.New()

	pendingLeave := func() *leave.Leave {
		return &leave.Leave{
			ID:         leaveID,
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: employeeID,
			TypeID:     uuid.New(),
			StartDate:  time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
			TotalDays:  3,
			Status:     leave.StatusPending,
		}
	}

	midWindowShift := shift.Shift{
		ID:      uuid.New(),
		StartAt: time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
		Status:  shift.StatusScheduled,
	}

	t.Run("blocked while an assigned shift overlaps the window", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			return pendingLeave(), nil
		}
		deps.shifts.findOverlappingFn = func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
			return []shift.Shift{midWindowShift}, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		var appErr *apperror.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, apperror.CodeConflict, appErr.Code)
			assert.Contains(t, appErr.Message, "conflicts with 1 assigned shift")
			assert.Contains(t, appErr.Message, midWindowShift.ID.String())
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approved swap releases the conflict", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			return pendingLeave(), nil
		}
		deps.shifts.findOverlappingFn = func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
			return []shift.Shift{midWindowShift}, nil
		}
		deps.swaps.hasApprovedFn = func(ctx context.Context, companyID, shiftID string) (bool, error) {
			assert.Equal(t, midWindowShift.ID.String(), shiftID)
			return true, nil
		}

		var updated *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			updated = l
			return nil
		}

		var dispatched *notification.NotifyInput
		deps.notifier.notifyFn = func(ctx context.Context, companyID string, in notification.NotifyInput) (notification.Result, error) {
			dispatched = &in
			return notification.Result{InApp: true, Email: true}, nil
		}

		resp, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		if assert.NotNil(t, updated) {
			assert.Equal(t, actorID, updated.ApprovedBy.String())
			assert.NotNil(t, updated.ApprovedAt)
		}
		if assert.NotNil(t, dispatched) {
			assert.Equal(t, notification.KindLeaveApproved, dispatched.Kind)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("shift touching the window boundary does not block", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			return pendingLeave(), nil
		}
		// Ends exactly when the default workday window opens on day one.
		deps.shifts.findOverlappingFn = func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
			return []shift.Shift{{
				ID:      uuid.New(),
				StartAt: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC),
			}}, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already decided request cannot be approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			l := pendingLeave()
			l.Status = leave.StatusRejected
			return l, nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Transitions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	leaveID := uuid.New()

	t.Run("approved leave can still be cancelled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			return &leave.Leave{
				ID:         leaveID,
				EmployeeID: uuid.New(),
				StartDate:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC),
				Status:     leave.StatusApproved,
			}, nil
		}

		var dispatched *notification.NotifyInput
		deps.notifier.notifyFn = func(ctx context.Context, companyID string, in notification.NotifyInput) (notification.Result, error) {
			dispatched = &in
			return notification.Result{InApp: true}, nil
		}

		resp, err := deps.service.Cancel(ctx, companyID, actorID, leaveID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		if assert.NotNil(t, dispatched) {
			assert.Equal(t, notification.KindLeaveCancelled, dispatched.Kind)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, companyID, actorID, leaveID.String(), "")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("cancelled leave is terminal", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			return &leave.Leave{ID: leaveID, Status: leave.StatusCancelled}, nil
		}

		_, err := deps.service.Cancel(ctx, companyID, actorID, leaveID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_CheckConflicts(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	leaveID := uuid.New()
	employeeID := uuid.New()

	t.Run("reports unresolved and resolved conflicts", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		blocked := shift.Shift{
			ID:      uuid.New(),
			StartAt: time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
		}
		swapped := shift.Shift{
			ID:      uuid.New(),
			StartAt: time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 6, 12, 17, 0, 0, 0, time.UTC),
		}

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			return &leave.Leave{
				ID:         leaveID,
				EmployeeID: employeeID,
				StartDate:  time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
				Status:     leave.StatusPending,
			}, nil
		}
		deps.shifts.findOverlappingFn = func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
			return []shift.Shift{blocked, swapped}, nil
		}
		deps.swaps.hasApprovedFn = func(ctx context.Context, companyID, shiftID string) (bool, error) {
			return shiftID == swapped.ID.String(), nil
		}

		resp, err := deps.service.CheckConflicts(ctx, companyID, leaveID.String())

		assert.NoError(t, err)
		assert.False(t, resp.CanBeApproved)
		assert.Len(t, resp.Conflicts, 2)
		assert.Contains(t, resp.Message, blocked.ID.String())
		assert.NotContains(t, resp.Message, swapped.ID.String())
	})

	t.Run("clear roster can be approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
			return &leave.Leave{
				ID:         leaveID,
				EmployeeID: employeeID,
				StartDate:  time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
				EndDate:    time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
				Status:     leave.StatusPending,
			}, nil
		}

		resp, err := deps.service.CheckConflicts(ctx, companyID, leaveID.String())

		assert.NoError(t, err)
		assert.True(t, resp.CanBeApproved)
		assert.Empty(t, resp.Conflicts)
		assert.Empty(t, resp.Message)
	})
}

// Approve opens one transaction and must run both the conflict check and the
// status write on it. Real repositories over a strictly ordered mock: any
// statement escaping to the pool, or a second gorm-managed BEGIN, fails the
// expectations.
func TestLeaveService_Approve_ChecksAndWritesInOneTransaction(t *testing.T) {
	gormDB, mock, closeDB := newGormOverMock(t)
	defer closeDB()

	sqlDB, err := gormDB.DB()
	assert.NoError(t, err)

	svc := leave.NewService(
		sqlDB,
		leave.NewRepository(gormDB),
		shift.NewRepository(gormDB),
		swap.NewRepository(gormDB),
		&fakeEmployeeDirectory{},
		&fakeDispatcher{},
		conflict.DefaultDayWindow(),
	)

	companyID := uuid.New()
	leaveID := uuid.New()
	employeeID := uuid.New()
	actorID := uuid.New()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leaves"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_id", "employee_id", "type_id",
			"start_date", "end_date", "total_days", "status", "created_by",
		}).AddRow(
			leaveID.String(), companyID.String(), employeeID.String(), uuid.New().String(),
			start, end, 3, leave.StatusPending, employeeID.String(),
		))
	// Conflict gate inside the same tx: no assigned shifts in the window.
	mock.ExpectQuery(`SELECT \* FROM "shifts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "leaves" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.Approve(context.Background(), companyID.String(), actorID.String(), leaveID.String())

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
