package mailer

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=email_log_repo.go -destination=mock/email_log_repo_mock.go -package=mock
type LogRepository interface {
	Append(ctx context.Context, entry *EmailLog) error
	FindByRecipient(ctx context.Context, companyID, recipientID string, limit int) ([]EmailLog, error)
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Append(ctx context.Context, entry *EmailLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepository) FindByRecipient(ctx context.Context, companyID, recipientID string, limit int) ([]EmailLog, error) {
	var entries []EmailLog
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
