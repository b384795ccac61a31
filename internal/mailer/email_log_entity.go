package mailer

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog is an append-only audit record of one send attempt. Rows are
// never updated or deleted.
type EmailLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientEmail string    `gorm:"type:varchar(255);not null"`
	Subject        string    `gorm:"type:varchar(255);not null"`
	EmailType      string    `gorm:"type:varchar(40);not null"`
	Success        bool      `gorm:"not null"`
	ErrorText      string    `gorm:"type:text"`
	CreatedAt      time.Time
}
