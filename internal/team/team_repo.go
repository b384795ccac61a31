package team

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-teamplanner/internal/tenant"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Team) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Team, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, companyID, id string) error

	FindMembers(ctx context.Context, companyID, teamID string) ([]Member, error)
	CountMembers(ctx context.Context, companyID, teamID string) (int64, error)
	// AssignEmployee moves the employee into the team; zero rows affected
	// means the employee does not exist in this company.
	AssignEmployee(ctx context.Context, companyID, teamID, employeeID string) (int64, error)
	// UnassignEmployee clears team_id; zero rows affected means the employee
	// was not in this team.
	UnassignEmployee(ctx context.Context, companyID, teamID, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction. Every query
// on the returned repository runs on tx, so the read-check-write sequence
// commits or rolls back as one unit.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	session.Statement.ConnPool = tx
	return &repository{db: session, tx: tx}
}

func (r *repository) Create(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Team{}, "id = ?", id).Error
}

func (r *repository) FindMembers(ctx context.Context, companyID, teamID string) ([]Member, error) {
	var members []Member
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND team_id = ? AND deleted_at IS NULL", companyID, teamID).
		Select("id", "full_name", "email", "position").
		Order("full_name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) CountMembers(ctx context.Context, companyID, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND team_id = ? AND deleted_at IS NULL", companyID, teamID).
		Count(&count).Error
	return count, err
}

func (r *repository) AssignEmployee(ctx context.Context, companyID, teamID, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND id = ? AND deleted_at IS NULL", companyID, employeeID).
		Update("team_id", teamID)
	return res.RowsAffected, res.Error
}

func (r *repository) UnassignEmployee(ctx context.Context, companyID, teamID, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND id = ? AND team_id = ? AND deleted_at IS NULL", companyID, employeeID, teamID).
		Update("team_id", nil)
	return res.RowsAffected, res.Error
}
