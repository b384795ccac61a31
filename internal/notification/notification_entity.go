package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`

	Type    string `gorm:"type:varchar(40);not null"`
	Title   string `gorm:"type:varchar(255);not null"`
	Message string `gorm:"type:text;not null"`

	ShiftID *uuid.UUID `gorm:"type:uuid"`
	LeaveID *uuid.UUID `gorm:"type:uuid"`
	SwapID  *uuid.UUID `gorm:"type:uuid"`

	Payload   []byte `gorm:"type:jsonb"`
	ActionURL string `gorm:"type:varchar(512)"`

	IsRead bool       `gorm:"not null;default:false;index:idx_notifications_recipient"`
	ReadAt *time.Time

	CreatedAt time.Time
}
