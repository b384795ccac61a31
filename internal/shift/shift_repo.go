package shift

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Shift) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Shift, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shift, error)
	Update(ctx context.Context, s *Shift) error
	Delete(ctx context.Context, companyID, id string) error
	// FindOverlapping returns an employee's non-cancelled shifts whose
	// [start_at, end_at) interval intersects [from, to), ordered by start.
	FindOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Shift, error)

	CreateTemplate(ctx context.Context, t *ShiftTemplate) error
	FindTemplatesByCompany(ctx context.Context, companyID string) ([]ShiftTemplate, error)
	FindTemplateByIDAndCompany(ctx context.Context, companyID, id string) (*ShiftTemplate, error)
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

func (r *repository) Create(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("start_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Shift{}, "id = ?", id).Error
}

func (r *repository) FindOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusCancelled).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) CreateTemplate(ctx context.Context, t *ShiftTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTemplatesByCompany(ctx context.Context, companyID string) ([]ShiftTemplate, error) {
	var templates []ShiftTemplate
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&templates).Error
	return templates, err
}

func (r *repository) FindTemplateByIDAndCompany(ctx context.Context, companyID, id string) (*ShiftTemplate, error) {
	var t ShiftTemplate
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
