package notification

import (
	"go-teamplanner/internal/preference"
)

// Kind enumerates every notification the system can emit. Adding a kind
// means adding a preference flag and a case to channelEnabled; the compiler
// and tests catch a missing mapping, there is no reflective lookup.
type Kind string

const (
	KindShiftAssigned     Kind = "SHIFT_ASSIGNED"
	KindShiftUpdated      Kind = "SHIFT_UPDATED"
	KindShiftCancelled    Kind = "SHIFT_CANCELLED"
	KindSchedulePublished Kind = "SCHEDULE_PUBLISHED"
	KindLeaveSubmitted    Kind = "LEAVE_SUBMITTED"
	KindLeaveApproved     Kind = "LEAVE_APPROVED"
	KindLeaveRejected     Kind = "LEAVE_REJECTED"
	KindLeaveCancelled    Kind = "LEAVE_CANCELLED"
	KindSwapRequested     Kind = "SWAP_REQUESTED"
	KindSwapApproved      Kind = "SWAP_APPROVED"
	KindSwapRejected      Kind = "SWAP_REJECTED"
	KindReminder          Kind = "REMINDER"
)

var allKinds = []Kind{
	KindShiftAssigned,
	KindShiftUpdated,
	KindShiftCancelled,
	KindSchedulePublished,
	KindLeaveSubmitted,
	KindLeaveApproved,
	KindLeaveRejected,
	KindLeaveCancelled,
	KindSwapRequested,
	KindSwapApproved,
	KindSwapRejected,
	KindReminder,
}

func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

func (k Kind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// channelEnabled maps a kind to its preference flag on one channel.
func channelEnabled(p preference.ChannelPrefs, k Kind) bool {
	switch k {
	case KindShiftAssigned:
		return p.ShiftAssigned
	case KindShiftUpdated:
		return p.ShiftUpdated
	case KindShiftCancelled:
		return p.ShiftCancelled
	case KindSchedulePublished:
		return p.SchedulePublished
	case KindLeaveSubmitted:
		return p.LeaveSubmitted
	case KindLeaveApproved:
		return p.LeaveApproved
	case KindLeaveRejected:
		return p.LeaveRejected
	case KindLeaveCancelled:
		return p.LeaveCancelled
	case KindSwapRequested:
		return p.SwapRequested
	case KindSwapApproved:
		return p.SwapApproved
	case KindSwapRejected:
		return p.SwapRejected
	case KindReminder:
		return p.Reminder
	default:
		return false
	}
}
