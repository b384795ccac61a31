package team

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	teamerrors "go-teamplanner/internal/team/errors"
)

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context, companyID string) ([]TeamResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TeamDetailResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateTeamRequest) (TeamResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	AddMember(ctx context.Context, companyID, id string, req AddMemberRequest) (TeamDetailResponse, error)
	RemoveMember(ctx context.Context, companyID, id, employeeID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateTeamRequest) (TeamResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TeamResponse{}, teamerrors.ErrTeamNotFound
	}

	t := &Team{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create team persist failed", zap.Error(err))
		return TeamResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create team success",
		zap.String("team_id", t.ID.String()),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*t, 0), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]TeamResponse, error) {
	teams, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]TeamResponse, len(teams))
	for i, t := range teams {
		count, err := s.repo.CountMembers(ctx, companyID, t.ID.String())
		if err != nil {
			return nil, err
		}
		resp[i] = mapToResponse(t, count)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TeamDetailResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TeamDetailResponse{}, mapRepositoryError(err)
	}

	members, err := s.repo.FindMembers(ctx, companyID, id)
	if err != nil {
		return TeamDetailResponse{}, err
	}

	return mapToDetailResponse(*t, members), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateTeamRequest) (TeamResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update team begin tx failed", zap.Error(err))
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}

	t.Name = req.Name
	t.Description = req.Description

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update team persist failed", zap.String("team_id", id), zap.Error(err))
		return TeamResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update team commit failed", zap.String("team_id", id), zap.Error(err))
		return TeamResponse{}, err
	}

	count, err := s.repo.CountMembers(ctx, companyID, id)
	if err != nil {
		return TeamResponse{}, err
	}

	s.logger.Info("update team success", zap.String("team_id", id))

	return mapToResponse(*t, count), nil
}

// Delete refuses while employees are still assigned, so a roster can never
// point at a missing team.
func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete team begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	count, err := qtx.CountMembers(ctx, companyID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return teamerrors.ErrTeamNotEmpty
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete team persist failed", zap.String("team_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete team commit failed", zap.String("team_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete team success", zap.String("team_id", id))
	return nil
}

func (s *service) AddMember(ctx context.Context, companyID, id string, req AddMemberRequest) (TeamDetailResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add team member begin tx failed", zap.Error(err))
		return TeamDetailResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return TeamDetailResponse{}, mapRepositoryError(err)
	}

	affected, err := qtx.AssignEmployee(ctx, companyID, id, req.EmployeeID)
	if err != nil {
		s.logger.Error("add team member persist failed",
			zap.String("team_id", id),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return TeamDetailResponse{}, err
	}
	if affected == 0 {
		return TeamDetailResponse{}, teamerrors.ErrEmployeeNotInCompany
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add team member commit failed", zap.String("team_id", id), zap.Error(err))
		return TeamDetailResponse{}, err
	}

	members, err := s.repo.FindMembers(ctx, companyID, id)
	if err != nil {
		return TeamDetailResponse{}, err
	}

	s.logger.Info("add team member success",
		zap.String("team_id", id),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToDetailResponse(*t, members), nil
}

func (s *service) RemoveMember(ctx context.Context, companyID, id, employeeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove team member begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return teamerrors.ErrTeamNotFound
		}
		return err
	}

	affected, err := qtx.UnassignEmployee(ctx, companyID, id, employeeID)
	if err != nil {
		s.logger.Error("remove team member persist failed",
			zap.String("team_id", id),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		return teamerrors.ErrMemberNotInTeam
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove team member commit failed", zap.String("team_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("remove team member success",
		zap.String("team_id", id),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func mapToResponse(t Team, memberCount int64) TeamResponse {
	return TeamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		MemberCount: memberCount,
	}
}

func mapToDetailResponse(t Team, members []Member) TeamDetailResponse {
	resp := TeamDetailResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Members:     make([]MemberResponse, len(members)),
	}
	for i, m := range members {
		resp.Members[i] = MemberResponse{
			ID:       m.ID.String(),
			FullName: m.FullName,
			Email:    m.Email,
			Position: m.Position,
		}
	}
	return resp
}
