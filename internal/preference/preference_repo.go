package preference

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=preference_repo.go -destination=mock/preference_repo_mock.go -package=mock
type Repository interface {
	FindByUser(ctx context.Context, companyID, userID string) (*Preference, error)
	Create(ctx context.Context, p *Preference) error
	Update(ctx context.Context, p *Preference) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUser(ctx context.Context, companyID, userID string) (*Preference, error) {
	var p Preference
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&p, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Preference) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Preference) error {
	return r.db.WithContext(ctx).Save(p).Error
}
