package swap

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-teamplanner/internal/tenant"
)

//go:generate mockgen -source=swap_repo.go -destination=mock/swap_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sr *SwapRequest) error
	FindAllByCompany(ctx context.Context, companyID string) ([]SwapRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SwapRequest, error)
	Update(ctx context.Context, sr *SwapRequest) error
	HasApprovedSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error)
	HasPendingSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, sr *SwapRequest) error {
	return r.db.WithContext(ctx).Create(sr).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SwapRequest, error) {
	var swaps []SwapRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&swaps).Error
	return swaps, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SwapRequest, error) {
	var sr SwapRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&sr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *repository) Update(ctx context.Context, sr *SwapRequest) error {
	return r.db.WithContext(ctx).Save(sr).Error
}

func (r *repository) HasApprovedSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error) {
	return r.countByStatus(ctx, companyID, shiftID, StatusApproved)
}

func (r *repository) HasPendingSwapForShift(ctx context.Context, companyID, shiftID string) (bool, error) {
	return r.countByStatus(ctx, companyID, shiftID, StatusPending)
}

func (r *repository) countByStatus(ctx context.Context, companyID, shiftID, status string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SwapRequest{}).
		Scopes(tenant.Scope(companyID)).
		Where("shift_id = ? AND status = ?", shiftID, status).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
