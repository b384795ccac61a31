package swap

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// SwapRequest asks to hand a shift from its current assignee to another
// employee. An APPROVED row is what releases the shift for leave approval.
type SwapRequest struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShiftID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequesterID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TargetEmployeeID uuid.UUID  `gorm:"type:uuid;not null"`
	Status           string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Reason           string     `gorm:"type:text"`
	DecisionNote     string     `gorm:"type:text"`
	DecidedBy        *uuid.UUID `gorm:"type:uuid"`
	DecidedAt        *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (SwapRequest) TableName() string { return "swap_requests" }
