package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-teamplanner/internal/events"
	"go-teamplanner/internal/messaging/kafka"
	scheduleerrors "go-teamplanner/internal/schedule/errors"
	"go-teamplanner/internal/shared/contextutil"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateScheduleRequest) (ScheduleResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ScheduleResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ScheduleResponse, error)
	GetStatus(ctx context.Context, companyID, id string) (ScheduleStatusResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateScheduleRequest) (ScheduleResponse, error)
	Publish(ctx context.Context, companyID, actorID, id string) (ScheduleResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateScheduleRequest) (ScheduleResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrScheduleNotFound
	}
	start, end, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return ScheduleResponse{}, err
	}

	sch := &Schedule{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        req.Name,
		PeriodStart: start,
		PeriodEnd:   end,
		Status:      StatusDraft,
	}

	if err := s.repo.Create(ctx, sch); err != nil {
		s.logger.Error("create schedule persist failed", zap.Error(err))
		return ScheduleResponse{}, err
	}

	s.logger.Info("create schedule success",
		zap.String("schedule_id", sch.ID.String()),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*sch), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ScheduleResponse, error) {
	schedules, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]ScheduleResponse, len(schedules))
	for i, sch := range schedules {
		resp[i] = mapToResponse(sch)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ScheduleResponse, error) {
	sch, err := s.find(ctx, companyID, id)
	if err != nil {
		return ScheduleResponse{}, err
	}
	return mapToResponse(*sch), nil
}

// GetStatus is the thin read clients poll after requesting a publish.
func (s *service) GetStatus(ctx context.Context, companyID, id string) (ScheduleStatusResponse, error) {
	sch, err := s.find(ctx, companyID, id)
	if err != nil {
		return ScheduleStatusResponse{}, err
	}
	resp := ScheduleStatusResponse{
		ID:     sch.ID.String(),
		Status: sch.Status,
	}
	if sch.PublishedAt != nil {
		v := sch.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &v
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateScheduleRequest) (ScheduleResponse, error) {
	start, end, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return ScheduleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update schedule begin tx failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sch, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScheduleResponse{}, scheduleerrors.ErrScheduleNotFound
		}
		return ScheduleResponse{}, err
	}
	if sch.Status != StatusDraft {
		return ScheduleResponse{}, scheduleerrors.ErrNotDraft
	}

	sch.Name = req.Name
	sch.PeriodStart = start
	sch.PeriodEnd = end

	if err := qtx.Update(ctx, sch); err != nil {
		s.logger.Error("update schedule persist failed", zap.String("schedule_id", id), zap.Error(err))
		return ScheduleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update schedule commit failed", zap.String("schedule_id", id), zap.Error(err))
		return ScheduleResponse{}, err
	}

	s.logger.Info("update schedule success", zap.String("schedule_id", id))

	return mapToResponse(*sch), nil
}

// Publish flips a draft to PUBLISHED and stages the broadcast event in the
// outbox inside the same transaction, so a published schedule can never
// silently skip its announcement.
func (s *service) Publish(ctx context.Context, companyID, actorID, id string) (ScheduleResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("publish schedule begin tx failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sch, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScheduleResponse{}, scheduleerrors.ErrScheduleNotFound
		}
		return ScheduleResponse{}, err
	}
	if sch.Status == StatusPublished {
		return ScheduleResponse{}, scheduleerrors.ErrAlreadyPublished
	}
	if sch.Status != StatusDraft {
		return ScheduleResponse{}, scheduleerrors.ErrNotDraft
	}

	now := time.Now().UTC()
	sch.Status = StatusPublished
	sch.PublishedBy = &actorUUID
	sch.PublishedAt = &now

	if err := qtx.Update(ctx, sch); err != nil {
		s.logger.Error("publish schedule persist failed", zap.String("schedule_id", id), zap.Error(err))
		return ScheduleResponse{}, err
	}

	event := events.SchedulePublishedEvent{
		EventType:   "schedule_published",
		ScheduleID:  sch.ID.String(),
		CompanyID:   companyID,
		Name:        sch.Name,
		PeriodStart: sch.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   sch.PeriodEnd.Format("2006-01-02"),
		PublishedBy: actorID,
		OccurredAt:  now,
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return ScheduleResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "schedule",
			AggregateID:   sch.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SchedulePublishedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("publish schedule outbox persist failed",
				zap.String("schedule_id", sch.ID.String()),
				zap.Error(err),
			)
			return ScheduleResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("publish schedule commit failed", zap.String("schedule_id", id), zap.Error(err))
		return ScheduleResponse{}, err
	}

	s.logger.Info("publish schedule success",
		zap.String("request_id", rid),
		zap.String("schedule_id", id),
		zap.String("published_by", actorID),
	)

	return mapToResponse(*sch), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sch, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return scheduleerrors.ErrScheduleNotFound
		}
		return err
	}
	if sch.Status != StatusDraft {
		return scheduleerrors.ErrNotDraft
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) find(ctx context.Context, companyID, id string) (*Schedule, error) {
	sch, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduleerrors.ErrScheduleNotFound
		}
		return nil, err
	}
	return sch, nil
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, scheduleerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, scheduleerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, scheduleerrors.ErrInvalidPeriod
	}
	return start, end, nil
}

func mapToResponse(sch Schedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:          sch.ID.String(),
		Name:        sch.Name,
		PeriodStart: sch.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   sch.PeriodEnd.Format("2006-01-02"),
		Status:      sch.Status,
	}
	if sch.PublishedBy != nil {
		v := sch.PublishedBy.String()
		resp.PublishedBy = &v
	}
	if sch.PublishedAt != nil {
		v := sch.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &v
	}
	return resp
}
