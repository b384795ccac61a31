package conflict_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-teamplanner/internal/conflict"
	"go-teamplanner/internal/shift"
)

type fakeShiftSource struct {
	findOverlappingFn func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error)
}

func (f *fakeShiftSource) FindOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
	if f.findOverlappingFn != nil {
		return f.findOverlappingFn(ctx, companyID, employeeID, from, to)
	}
	return nil, nil
}

type fakeSwapChecker struct {
	hasApprovedFn func(ctx context.Context, companyID, shiftID string) (bool, error)
}

func (f *fakeSwapChecker) HasApprovedSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error) {
	if f.hasApprovedFn != nil {
		return f.hasApprovedFn(ctx, companyID, shiftID)
	}
	return false, nil
}

func strPtr(v string) *string { return &v }

func shiftAt(start, end time.Time) shift.Shift {
	return shift.Shift{ID: uuid.New(), StartAt: start, EndAt: end, Status: shift.StatusScheduled}
}

func TestWindowBounds(t *testing.T) {
	day := conflict.DefaultDayWindow()

	t.Run("defaults apply when no overrides are set", func(t *testing.T) {
		w := conflict.Window{
			StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
		}

		start, end, err := w.Bounds(day)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 6, 12, 17, 0, 0, 0, time.UTC), end)
	})

	t.Run("overrides narrow the first and last day", func(t *testing.T) {
		w := conflict.Window{
			StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime: strPtr("12:00"),
			EndTime:   strPtr("15:30"),
		}

		start, end, err := w.Bounds(day)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC), end)
	})

	t.Run("single day uses the workday window", func(t *testing.T) {
		w := conflict.Window{
			StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		}

		start, end, err := w.Bounds(day)

		assert.NoError(t, err)
		assert.Equal(t, 9*time.Hour, end.Sub(start))
	})

	t.Run("malformed override rejected", func(t *testing.T) {
		w := conflict.Window{
			StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime: strPtr("9am"),
		}

		_, _, err := w.Bounds(day)

		assert.ErrorIs(t, err, conflict.ErrInvalidTimeOfDay)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		w := conflict.Window{
			StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime: strPtr("16:00"),
			EndTime:   strPtr("09:00"),
		}

		_, _, err := w.Bounds(day)

		assert.ErrorIs(t, err, conflict.ErrInvalidWindow)
	})
}

func TestOverlaps(t *testing.T) {
	windowStart := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 6, 12, 17, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "fully inside",
			start: time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "straddles the window start",
			start: time.Date(2026, 6, 10, 6, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 10, 10, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "ends exactly at the window start",
			start: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			end:   windowStart,
			want:  false,
		},
		{
			name:  "starts exactly at the window end",
			start: windowEnd,
			end:   time.Date(2026, 6, 13, 1, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "entirely before",
			start: time.Date(2026, 6, 9, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 9, 17, 0, 0, 0, time.UTC),
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := shiftAt(tc.start, tc.end)
			assert.Equal(t, tc.want, conflict.Overlaps(s, windowStart, windowEnd))
		})
	}
}

func TestResolverCanBeApproved(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	window := conflict.Window{
		StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("clear roster approves", func(t *testing.T) {
		r := conflict.NewResolver(&fakeShiftSource{}, &fakeSwapChecker{}, conflict.DefaultDayWindow())

		ok, unresolved, err := r.CanBeApproved(ctx, companyID, employeeID, window)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, unresolved)
	})

	t.Run("unswapped shift blocks", func(t *testing.T) {
		blocked := shiftAt(
			time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
		)
		shifts := &fakeShiftSource{
			findOverlappingFn: func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
				return []shift.Shift{blocked}, nil
			},
		}
		r := conflict.NewResolver(shifts, &fakeSwapChecker{}, conflict.DefaultDayWindow())

		ok, unresolved, err := r.CanBeApproved(ctx, companyID, employeeID, window)

		assert.NoError(t, err)
		assert.False(t, ok)
		if assert.Len(t, unresolved, 1) {
			assert.Equal(t, blocked.ID, unresolved[0].ID)
		}
	})

	t.Run("approved swap resolves the conflict", func(t *testing.T) {
		blocked := shiftAt(
			time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
		)
		shifts := &fakeShiftSource{
			findOverlappingFn: func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
				return []shift.Shift{blocked}, nil
			},
		}
		swaps := &fakeSwapChecker{
			hasApprovedFn: func(ctx context.Context, companyID, shiftID string) (bool, error) {
				return shiftID == blocked.ID.String(), nil
			},
		}
		r := conflict.NewResolver(shifts, swaps, conflict.DefaultDayWindow())

		ok, unresolved, err := r.CanBeApproved(ctx, companyID, employeeID, window)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, unresolved)
	})

	t.Run("mixed conflicts keep only the unresolved ones", func(t *testing.T) {
		swapped := shiftAt(
			time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 10, 17, 0, 0, 0, time.UTC),
		)
		blocked := shiftAt(
			time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
		)
		shifts := &fakeShiftSource{
			findOverlappingFn: func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
				return []shift.Shift{swapped, blocked}, nil
			},
		}
		swaps := &fakeSwapChecker{
			hasApprovedFn: func(ctx context.Context, companyID, shiftID string) (bool, error) {
				return shiftID == swapped.ID.String(), nil
			},
		}
		r := conflict.NewResolver(shifts, swaps, conflict.DefaultDayWindow())

		ok, unresolved, err := r.CanBeApproved(ctx, companyID, employeeID, window)

		assert.NoError(t, err)
		assert.False(t, ok)
		if assert.Len(t, unresolved, 1) {
			assert.Equal(t, blocked.ID, unresolved[0].ID)
		}
	})

	t.Run("boundary-touching shift never conflicts", func(t *testing.T) {
		touching := shiftAt(
			time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC),
		)
		shifts := &fakeShiftSource{
			findOverlappingFn: func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
				return []shift.Shift{touching}, nil
			},
		}
		r := conflict.NewResolver(shifts, &fakeSwapChecker{}, conflict.DefaultDayWindow())

		ok, unresolved, err := r.CanBeApproved(ctx, companyID, employeeID, window)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, unresolved)
	})
}

func TestBlockingMessage(t *testing.T) {
	t.Run("empty for no conflicts", func(t *testing.T) {
		assert.Empty(t, conflict.BlockingMessage(nil))
	})

	t.Run("singular", func(t *testing.T) {
		s := shiftAt(
			time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
		)

		msg := conflict.BlockingMessage([]shift.Shift{s})

		assert.Contains(t, msg, "1 assigned shift:")
		assert.Contains(t, msg, s.ID.String())
		assert.Contains(t, msg, "2026-06-11 09:00")
	})

	t.Run("plural", func(t *testing.T) {
		a := shiftAt(
			time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 10, 17, 0, 0, 0, time.UTC),
		)
		b := shiftAt(
			time.Date(2026, 6, 11, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 11, 17, 0, 0, 0, time.UTC),
		)

		msg := conflict.BlockingMessage([]shift.Shift{a, b})

		assert.Contains(t, msg, "2 assigned shifts:")
		assert.Contains(t, msg, a.ID.String())
		assert.Contains(t, msg, b.ID.String())
	})
}
