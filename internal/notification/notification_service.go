package notification

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-teamplanner/internal/mailer"
	notificationerrors "go-teamplanner/internal/notification/errors"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID, recipientID string) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, companyID, recipientID string) (int64, error)
	MarkRead(ctx context.Context, companyID, recipientID, id string) (NotificationResponse, error)
	MarkUnread(ctx context.Context, companyID, recipientID, id string) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, companyID, recipientID string) (int64, error)
	Clear(ctx context.Context, companyID, recipientID string) (int64, error)
	// EmailHistory exposes the append-only email audit trail for the
	// recipient's own address.
	EmailHistory(ctx context.Context, companyID, recipientID string, limit int) ([]EmailLogResponse, error)
}

type service struct {
	repo   Repository
	emails mailer.LogRepository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithEmailLog(repo, nil, logger...)
}

// NewServiceWithEmailLog additionally exposes the email audit trail.
func NewServiceWithEmailLog(repo Repository, emails mailer.LogRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, emails: emails, logger: l}
}

func (s *service) GetAll(ctx context.Context, companyID, recipientID string) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindAllByRecipient(ctx, companyID, recipientID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(notifications), nil
}

func (s *service) UnreadCount(ctx context.Context, companyID, recipientID string) (int64, error) {
	return s.repo.CountUnread(ctx, companyID, recipientID)
}

func (s *service) MarkRead(ctx context.Context, companyID, recipientID, id string) (NotificationResponse, error) {
	return s.setRead(ctx, companyID, recipientID, id, true)
}

func (s *service) MarkUnread(ctx context.Context, companyID, recipientID, id string) (NotificationResponse, error) {
	return s.setRead(ctx, companyID, recipientID, id, false)
}

func (s *service) setRead(ctx context.Context, companyID, recipientID, id string, read bool) (NotificationResponse, error) {
	n, err := s.repo.FindByIDAndRecipient(ctx, companyID, recipientID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	n.IsRead = read
	if read {
		now := time.Now().UTC()
		n.ReadAt = &now
	} else {
		n.ReadAt = nil
	}

	if err := s.repo.Update(ctx, n); err != nil {
		s.logger.Error("update notification read state failed",
			zap.String("notification_id", id),
			zap.Bool("read", read),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) MarkAllRead(ctx context.Context, companyID, recipientID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, companyID, recipientID, time.Now().UTC())
}

// Clear is the only path that deletes notification rows, and only the
// recipient's own.
func (s *service) Clear(ctx context.Context, companyID, recipientID string) (int64, error) {
	deleted, err := s.repo.DeleteAllByRecipient(ctx, companyID, recipientID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("notifications cleared",
		zap.String("recipient_id", recipientID),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}

func (s *service) EmailHistory(ctx context.Context, companyID, recipientID string, limit int) ([]EmailLogResponse, error) {
	if s.emails == nil {
		return []EmailLogResponse{}, nil
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := s.emails.FindByRecipient(ctx, companyID, recipientID, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]EmailLogResponse, len(entries))
	for i, e := range entries {
		resp[i] = EmailLogResponse{
			ID:             e.ID.String(),
			RecipientEmail: e.RecipientEmail,
			Subject:        e.Subject,
			EmailType:      e.EmailType,
			Success:        e.Success,
			ErrorText:      e.ErrorText,
			CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID.String(),
		RecipientID: n.RecipientID.String(),
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		ActionURL:   n.ActionURL,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.ShiftID != nil {
		v := n.ShiftID.String()
		resp.ShiftID = &v
	}
	if n.LeaveID != nil {
		v := n.LeaveID.String()
		resp.LeaveID = &v
	}
	if n.SwapID != nil {
		v := n.SwapID.String()
		resp.SwapID = &v
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	if len(n.Payload) > 0 {
		resp.Data = n.Payload
	}
	return resp
}

func mapToListResponse(notifications []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp
}
