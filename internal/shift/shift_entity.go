package shift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

const (
	TypeRegular  = "REGULAR"
	TypeOvertime = "OVERTIME"
	TypeOnCall   = "ON_CALL"
)

// ShiftTemplate is reference data describing a recurring shift shape.
type ShiftTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	ShiftType string    `gorm:"type:varchar(30);not null;default:'REGULAR'"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Shift struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_shifts_company_status"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index:idx_shifts_employee_window"`
	TemplateID *uuid.UUID `gorm:"type:uuid"`
	ScheduleID *uuid.UUID `gorm:"type:uuid;index"`

	StartAt time.Time `gorm:"not null;index:idx_shifts_employee_window"`
	EndAt   time.Time `gorm:"not null;index:idx_shifts_employee_window"`

	Status string `gorm:"type:varchar(20);not null;default:'SCHEDULED';index:idx_shifts_company_status"`
	Notes  string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
