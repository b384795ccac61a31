package preference

// ChannelPrefsPatch carries optional per-kind toggles. A nil field leaves
// the stored value unchanged, so clients can PUT a partial document without
// silently disabling the kinds they omitted.
type ChannelPrefsPatch struct {
	ShiftAssigned     *bool `json:"shift_assigned"`
	ShiftUpdated      *bool `json:"shift_updated"`
	ShiftCancelled    *bool `json:"shift_cancelled"`
	SchedulePublished *bool `json:"schedule_published"`
	LeaveSubmitted    *bool `json:"leave_submitted"`
	LeaveApproved     *bool `json:"leave_approved"`
	LeaveRejected     *bool `json:"leave_rejected"`
	LeaveCancelled    *bool `json:"leave_cancelled"`
	SwapRequested     *bool `json:"swap_requested"`
	SwapApproved      *bool `json:"swap_approved"`
	SwapRejected      *bool `json:"swap_rejected"`
	Reminder          *bool `json:"reminder"`
}

func (patch ChannelPrefsPatch) apply(cur ChannelPrefs) ChannelPrefs {
	if patch.ShiftAssigned != nil {
		cur.ShiftAssigned = *patch.ShiftAssigned
	}
	if patch.ShiftUpdated != nil {
		cur.ShiftUpdated = *patch.ShiftUpdated
	}
	if patch.ShiftCancelled != nil {
		cur.ShiftCancelled = *patch.ShiftCancelled
	}
	if patch.SchedulePublished != nil {
		cur.SchedulePublished = *patch.SchedulePublished
	}
	if patch.LeaveSubmitted != nil {
		cur.LeaveSubmitted = *patch.LeaveSubmitted
	}
	if patch.LeaveApproved != nil {
		cur.LeaveApproved = *patch.LeaveApproved
	}
	if patch.LeaveRejected != nil {
		cur.LeaveRejected = *patch.LeaveRejected
	}
	if patch.LeaveCancelled != nil {
		cur.LeaveCancelled = *patch.LeaveCancelled
	}
	if patch.SwapRequested != nil {
		cur.SwapRequested = *patch.SwapRequested
	}
	if patch.SwapApproved != nil {
		cur.SwapApproved = *patch.SwapApproved
	}
	if patch.SwapRejected != nil {
		cur.SwapRejected = *patch.SwapRejected
	}
	if patch.Reminder != nil {
		cur.Reminder = *patch.Reminder
	}
	return cur
}

type UpdatePreferenceRequest struct {
	InApp           *ChannelPrefsPatch `json:"inapp"`
	Email           *ChannelPrefsPatch `json:"email"`
	QuietHoursStart *string            `json:"quiet_hours_start"`
	QuietHoursEnd   *string            `json:"quiet_hours_end"`
}

type PreferenceResponse struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	InApp           ChannelPrefs `json:"inapp"`
	Email           ChannelPrefs `json:"email"`
	QuietHoursStart *string      `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   *string      `json:"quiet_hours_end,omitempty"`
}
