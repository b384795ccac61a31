package team

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_teams_company_name"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_teams_company_name"`
	Description string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Member is a projection over the employees table; membership lives on
// employees.team_id, there is no join table.
type Member struct {
	ID       uuid.UUID `gorm:"type:uuid"`
	FullName string
	Email    string
	Position string
}
