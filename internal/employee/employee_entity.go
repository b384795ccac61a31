package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	TeamID         *uuid.UUID     `gorm:"type:uuid;index"`
	EmployeeNumber string         `gorm:"type:varchar(20);not null;uniqueIndex:idx_employees_company_number"`
	FullName       string         `gorm:"type:varchar(150);not null"`
	Email          string         `gorm:"type:varchar(150);not null;uniqueIndex:idx_employees_company_email"`
	Phone          string         `gorm:"type:varchar(30)"`
	Position       string         `gorm:"type:varchar(100)"`
	HireDate       time.Time      `gorm:"type:date;not null"`
	IsActive       bool           `gorm:"not null;default:true"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string { return "employees" }

// Option is the slim projection used by pickers and broadcast fan-out.
type Option struct {
	ID       uuid.UUID `gorm:"column:id"`
	FullName string    `gorm:"column:full_name"`
	Email    string    `gorm:"column:email"`
}
