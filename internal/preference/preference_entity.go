package preference

import (
	"time"

	"github.com/google/uuid"
)

// ChannelPrefs carries one flag per notification kind. The set of fields is
// the single source of truth for which kinds a channel can be toggled for;
// lookups go through an exhaustive switch instead of reflection.
type ChannelPrefs struct {
	ShiftAssigned     bool `gorm:"not null;default:true" json:"shift_assigned"`
	ShiftUpdated      bool `gorm:"not null;default:true" json:"shift_updated"`
	ShiftCancelled    bool `gorm:"not null;default:true" json:"shift_cancelled"`
	SchedulePublished bool `gorm:"not null;default:true" json:"schedule_published"`
	LeaveSubmitted    bool `gorm:"not null;default:true" json:"leave_submitted"`
	LeaveApproved     bool `gorm:"not null;default:true" json:"leave_approved"`
	LeaveRejected     bool `gorm:"not null;default:true" json:"leave_rejected"`
	LeaveCancelled    bool `gorm:"not null;default:true" json:"leave_cancelled"`
	SwapRequested     bool `gorm:"not null;default:true" json:"swap_requested"`
	SwapApproved      bool `gorm:"not null;default:true" json:"swap_approved"`
	SwapRejected      bool `gorm:"not null;default:true" json:"swap_rejected"`
	Reminder          bool `gorm:"not null;default:true" json:"reminder"`
}

func DefaultChannelPrefs() ChannelPrefs {
	return ChannelPrefs{
		ShiftAssigned:     true,
		ShiftUpdated:      true,
		ShiftCancelled:    true,
		SchedulePublished: true,
		LeaveSubmitted:    true,
		LeaveApproved:     true,
		LeaveRejected:     true,
		LeaveCancelled:    true,
		SwapRequested:     true,
		SwapApproved:      true,
		SwapRejected:      true,
		Reminder:          true,
	}
}

// Preference is the per-user notification preference row, one per user,
// created lazily with all channels enabled.
type Preference struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	InApp ChannelPrefs `gorm:"embedded;embeddedPrefix:inapp_"`
	Email ChannelPrefs `gorm:"embedded;embeddedPrefix:email_"`

	// Quiet hours are HH:MM times of day; email is suppressed inside the
	// range. Either bound unset disables quiet hours entirely.
	QuietHoursStart *string `gorm:"type:varchar(5)"`
	QuietHoursEnd   *string `gorm:"type:varchar(5)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
