package preference

import (
	"context"
	"errors"
	preferenceerrors "go-teamplanner/internal/preference/errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=preference_service.go -destination=mock/preference_service_mock.go -package=mock
type Service interface {
	// GetOrCreate is the single accessor for preference rows. Rows are
	// created on first access with all channels enabled and never deleted.
	GetOrCreate(ctx context.Context, companyID, userID string) (*Preference, error)
	Update(ctx context.Context, companyID, userID string, req UpdatePreferenceRequest) (PreferenceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("preference.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preference.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetOrCreate(ctx context.Context, companyID, userID string) (*Preference, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, preferenceerrors.ErrInvalidCompanyID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, preferenceerrors.ErrInvalidUserID
	}

	p, err := s.repo.FindByUser(ctx, companyID, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &Preference{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		UserID:    userUUID,
		InApp:     DefaultChannelPrefs(),
		Email:     DefaultChannelPrefs(),
	}
	if err := s.repo.Create(ctx, created); err != nil {
		// Unique index on user_id: a concurrent first access may have won,
		// in which case the stored row is the one to use.
		if existing, findErr := s.repo.FindByUser(ctx, companyID, userID); findErr == nil {
			return existing, nil
		}
		s.logger.Error("create default preferences failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("default preferences created",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
	)
	return created, nil
}

func (s *service) Update(ctx context.Context, companyID, userID string, req UpdatePreferenceRequest) (PreferenceResponse, error) {
	if err := validateQuietHours(req.QuietHoursStart, req.QuietHoursEnd); err != nil {
		return PreferenceResponse{}, err
	}

	p, err := s.GetOrCreate(ctx, companyID, userID)
	if err != nil {
		return PreferenceResponse{}, err
	}

	// Channel sections merge; omitted kinds keep their stored value.
	// Quiet hours replace, since clearing them means sending both as null.
	if req.InApp != nil {
		p.InApp = req.InApp.apply(p.InApp)
	}
	if req.Email != nil {
		p.Email = req.Email.apply(p.Email)
	}
	p.QuietHoursStart = req.QuietHoursStart
	p.QuietHoursEnd = req.QuietHoursEnd
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update preferences failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return PreferenceResponse{}, err
	}

	return mapToResponse(*p), nil
}

func validateQuietHours(start, end *string) error {
	if (start == nil) != (end == nil) {
		return preferenceerrors.ErrInvalidQuietHours
	}
	if start == nil {
		return nil
	}
	if _, ok := parseMinuteOfDay(*start); !ok {
		return preferenceerrors.ErrInvalidQuietHours
	}
	if _, ok := parseMinuteOfDay(*end); !ok {
		return preferenceerrors.ErrInvalidQuietHours
	}
	return nil
}

func mapToResponse(p Preference) PreferenceResponse {
	return PreferenceResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		InApp:           p.InApp,
		Email:           p.Email,
		QuietHoursStart: p.QuietHoursStart,
		QuietHoursEnd:   p.QuietHoursEnd,
	}
}
