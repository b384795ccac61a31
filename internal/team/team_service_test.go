package team_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-teamplanner/internal/team"
	teamerrors "go-teamplanner/internal/team/errors"
)

type fakeTeamRepository struct {
	withTxFn             func(tx *sql.Tx) team.Repository
	createFn             func(ctx context.Context, t *team.Team) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]team.Team, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*team.Team, error)
	updateFn             func(ctx context.Context, t *team.Team) error
	deleteFn             func(ctx context.Context, companyID, id string) error
	findMembersFn        func(ctx context.Context, companyID, teamID string) ([]team.Member, error)
	countMembersFn       func(ctx context.Context, companyID, teamID string) (int64, error)
	assignEmployeeFn     func(ctx context.Context, companyID, teamID, employeeID string) (int64, error)
	unassignEmployeeFn   func(ctx context.Context, companyID, teamID, employeeID string) (int64, error)
}

func (f *fakeTeamRepository) WithTx(tx *sql.Tx) team.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTeamRepository) Create(ctx context.Context, t *team.Team) error {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return nil
}

func (f *fakeTeamRepository) FindAllByCompany(ctx context.Context, companyID string) ([]team.Team, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeTeamRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*team.Team, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepository) Update(ctx context.Context, t *team.Team) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, t)
	}
	return nil
}

func (f *fakeTeamRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeTeamRepository) FindMembers(ctx context.Context, companyID, teamID string) ([]team.Member, error) {
	if f.findMembersFn != nil {
		return f.findMembersFn(ctx, companyID, teamID)
	}
	return nil, nil
}

func (f *fakeTeamRepository) CountMembers(ctx context.Context, companyID, teamID string) (int64, error) {
	if f.countMembersFn != nil {
		return f.countMembersFn(ctx, companyID, teamID)
	}
	return 0, nil
}

func (f *fakeTeamRepository) AssignEmployee(ctx context.Context, companyID, teamID, employeeID string) (int64, error) {
	if f.assignEmployeeFn != nil {
		return f.assignEmployeeFn(ctx, companyID, teamID, employeeID)
	}
	return 1, nil
}

func (f *fakeTeamRepository) UnassignEmployee(ctx context.Context, companyID, teamID, employeeID string) (int64, error) {
	if f.unassignEmployeeFn != nil {
		return f.unassignEmployeeFn(ctx, companyID, teamID, employeeID)
	}
	return 1, nil
}

type teamServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *fakeTeamRepository
	service team.Service
}

func setupTeamServiceTest(t *testing.T) *teamServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTeamRepository{}
	return &teamServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: team.NewService(db, repo),
	}
}

func storedTeam(id uuid.UUID) *team.Team {
	return &team.Team{ID: id, CompanyID: uuid.New(), Name: "Night crew"}
}

func TestTeamService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.Create(ctx, companyID, team.CreateTeamRequest{Name: "Night crew"})

		assert.NoError(t, err)
		assert.Equal(t, "Night crew", resp.Name)
		assert.Zero(t, resp.MemberCount)
	})

	t.Run("duplicate name mapped", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, tm *team.Team) error {
			return assert.AnError
		}

		_, err := deps.service.Create(ctx, companyID, team.CreateTeamRequest{Name: "Night crew"})
		assert.Error(t, err)
	})
}

func TestTeamService_Members(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	teamID := uuid.New()
	employeeID := uuid.New().String()

	t.Run("add member returns the fresh roster", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*team.Team, error) {
			return storedTeam(teamID), nil
		}
		deps.repo.findMembersFn = func(ctx context.Context, companyID, tid string) ([]team.Member, error) {
			return []team.Member{{ID: uuid.MustParse(employeeID), FullName: "Dana Flint", Email: "dana@example.test"}}, nil
		}

		resp, err := deps.service.AddMember(ctx, companyID, teamID.String(), team.AddMemberRequest{EmployeeID: employeeID})

		assert.NoError(t, err)
		if assert.Len(t, resp.Members, 1) {
			assert.Equal(t, employeeID, resp.Members[0].ID)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee rejected", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*team.Team, error) {
			return storedTeam(teamID), nil
		}
		deps.repo.assignEmployeeFn = func(ctx context.Context, companyID, teamID, employeeID string) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.AddMember(ctx, companyID, teamID.String(), team.AddMemberRequest{EmployeeID: employeeID})

		assert.ErrorIs(t, err, teamerrors.ErrEmployeeNotInCompany)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("remove member not in team", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*team.Team, error) {
			return storedTeam(teamID), nil
		}
		deps.repo.unassignEmployeeFn = func(ctx context.Context, companyID, teamID, employeeID string) (int64, error) {
			return 0, nil
		}

		err := deps.service.RemoveMember(ctx, companyID, teamID.String(), employeeID)

		assert.ErrorIs(t, err, teamerrors.ErrMemberNotInTeam)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestTeamService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	teamID := uuid.New()

	t.Run("refuses while members remain", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*team.Team, error) {
			return storedTeam(teamID), nil
		}
		deps.repo.countMembersFn = func(ctx context.Context, companyID, tid string) (int64, error) {
			return 4, nil
		}

		err := deps.service.Delete(ctx, companyID, teamID.String())

		assert.ErrorIs(t, err, teamerrors.ErrTeamNotEmpty)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty team deleted", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*team.Team, error) {
			return storedTeam(teamID), nil
		}

		err := deps.service.Delete(ctx, companyID, teamID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown team", func(t *testing.T) {
		deps := setupTeamServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, companyID, teamID.String())

		assert.ErrorIs(t, err, teamerrors.ErrTeamNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
