package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindAllByRecipient(ctx context.Context, companyID, recipientID string) ([]Notification, error)
	FindByIDAndRecipient(ctx context.Context, companyID, recipientID, id string) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, companyID, recipientID string, readAt time.Time) (int64, error)
	DeleteAllByRecipient(ctx context.Context, companyID, recipientID string) (int64, error)
	CountUnread(ctx context.Context, companyID, recipientID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByRecipient(ctx context.Context, companyID, recipientID string) ([]Notification, error) {
	var notifications []Notification
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) FindByIDAndRecipient(ctx context.Context, companyID, recipientID, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("recipient_id = ?", recipientID).
		First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) MarkAllRead(ctx context.Context, companyID, recipientID string, readAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("company_id = ?", companyID).
		Where("recipient_id = ?", recipientID).
		Where("is_read = false").
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteAllByRecipient(ctx context.Context, companyID, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("recipient_id = ?", recipientID).
		Delete(&Notification{})
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnread(ctx context.Context, companyID, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("company_id = ?", companyID).
		Where("recipient_id = ?", recipientID).
		Where("is_read = false").
		Count(&count).Error
	return count, err
}
