package conflict

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-teamplanner/internal/shared/apperror"
	"go-teamplanner/internal/shift"

	"go.uber.org/zap"
)

var (
	ErrInvalidTimeOfDay = apperror.New(
		apperror.CodeInvalidInput,
		"time of day must be HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidWindow = apperror.New(
		apperror.CodeInvalidInput,
		"leave window end must be after its start",
		http.StatusBadRequest,
	)
)

// DayWindow is the fallback time-of-day range a leave day blocks when the
// request carries no explicit override.
type DayWindow struct {
	Start string
	End   string
}

func DefaultDayWindow() DayWindow {
	return DayWindow{Start: "08:00", End: "17:00"}
}

// Window is a leave request's date range plus optional time-of-day bounds.
type Window struct {
	StartDate time.Time
	EndDate   time.Time
	StartTime *string
	EndTime   *string
}

// Bounds resolves the window to a concrete [start, end) datetime interval.
// A zero-length date range (start == end) still covers that one day.
func (w Window) Bounds(day DayWindow) (time.Time, time.Time, error) {
	startOfDay := w.StartTime
	if startOfDay == nil {
		startOfDay = &day.Start
	}
	endOfDay := w.EndTime
	if endOfDay == nil {
		endOfDay = &day.End
	}

	start, err := atTimeOfDay(w.StartDate, *startOfDay)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := atTimeOfDay(w.EndDate, *endOfDay)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}
	return start, end, nil
}

func atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, ErrInvalidTimeOfDay
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// Overlaps is the half-open interval predicate: a shift conflicts iff
// shift.start < window.end AND shift.end > window.start. Touching
// boundaries do not conflict.
func Overlaps(s shift.Shift, windowStart, windowEnd time.Time) bool {
	return s.StartAt.Before(windowEnd) && s.EndAt.After(windowStart)
}

type ShiftSource interface {
	FindOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error)
}

// SwapChecker reports whether a conflicting shift has already been resolved
// elsewhere, e.g. by an approved swap.
type SwapChecker interface {
	HasApprovedSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error)
}

// Resolver gates leave approval on assigned-shift conflicts.
type Resolver struct {
	shifts ShiftSource
	swaps  SwapChecker
	day    DayWindow
	logger *zap.Logger
}

func NewResolver(shifts ShiftSource, swaps SwapChecker, day DayWindow, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("conflict.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("conflict.resolver")
	}
	if day.Start == "" || day.End == "" {
		day = DefaultDayWindow()
	}
	return &Resolver{shifts: shifts, swaps: swaps, day: day, logger: l}
}

// FindConflictingShifts returns the employee's shifts overlapping the leave
// window, ordered by start time ascending.
func (r *Resolver) FindConflictingShifts(ctx context.Context, companyID, employeeID string, w Window) ([]shift.Shift, error) {
	start, end, err := w.Bounds(r.day)
	if err != nil {
		return nil, err
	}

	candidates, err := r.shifts.FindOverlapping(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	conflicts := make([]shift.Shift, 0, len(candidates))
	for _, s := range candidates {
		if Overlaps(s, start, end) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts, nil
}

// CanBeApproved reports whether every conflicting shift already has an
// approved resolution; the second return value lists the unresolved ones.
func (r *Resolver) CanBeApproved(ctx context.Context, companyID, employeeID string, w Window) (bool, []shift.Shift, error) {
	conflicts, err := r.FindConflictingShifts(ctx, companyID, employeeID, w)
	if err != nil {
		return false, nil, err
	}
	if len(conflicts) == 0 {
		return true, nil, nil
	}

	unresolved := make([]shift.Shift, 0, len(conflicts))
	for _, s := range conflicts {
		resolved, err := r.swaps.HasApprovedSwapForShift(ctx, companyID, s.ID.String())
		if err != nil {
			return false, nil, err
		}
		if !resolved {
			unresolved = append(unresolved, s)
		}
	}

	if len(unresolved) > 0 {
		r.logger.Debug("approval blocked by shift conflicts",
			zap.String("employee_id", employeeID),
			zap.Int("unresolved", len(unresolved)),
		)
	}
	return len(unresolved) == 0, unresolved, nil
}

// BlockingMessage renders the human-readable reason approval is blocked.
func BlockingMessage(conflicts []shift.Shift) string {
	if len(conflicts) == 0 {
		return ""
	}

	ids := make([]string, len(conflicts))
	for i, s := range conflicts {
		ids[i] = fmt.Sprintf("%s (%s - %s)",
			s.ID.String(),
			s.StartAt.Format("2006-01-02 15:04"),
			s.EndAt.Format("2006-01-02 15:04"),
		)
	}

	noun := "shifts"
	if len(conflicts) == 1 {
		noun = "shift"
	}
	return fmt.Sprintf("leave request conflicts with %d assigned %s: %s",
		len(conflicts), noun, strings.Join(ids, ", "))
}
