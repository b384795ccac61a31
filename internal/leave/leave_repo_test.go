package leave_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-teamplanner/internal/leave"
)

func newGormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock, func() { sqlDB.Close() }
}

// Every statement issued through a WithTx repository must run on the caller's
// transaction, not on the pool. The mock is strictly ordered, so a stray
// gorm-managed BEGIN outside the caller's tx fails the test.
func TestLeaveRepository_WithTx_RunsOnCallerTransaction(t *testing.T) {
	gormDB, mock, closeDB := newGormOverMock(t)
	defer closeDB()

	sqlDB, err := gormDB.DB()
	assert.NoError(t, err)

	repo := leave.NewRepository(gormDB)

	companyID := uuid.New()
	leaveID := uuid.New()
	employeeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leaves"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "employee_id", "status"}).
			AddRow(leaveID.String(), companyID.String(), employeeID.String(), leave.StatusPending))
	mock.ExpectExec(`UPDATE "leaves" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	assert.NoError(t, err)

	qtx := repo.WithTx(tx)

	ctx := context.Background()
	l, err := qtx.FindByIDAndCompany(ctx, companyID.String(), leaveID.String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusPending, l.Status)

	l.Status = leave.StatusApproved
	assert.NoError(t, qtx.Update(ctx, l))

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The base repository must stay bound to the pool after WithTx has been
// taken from it.
func TestLeaveRepository_WithTx_DoesNotRebindBaseRepository(t *testing.T) {
	gormDB, mock, closeDB := newGormOverMock(t)
	defer closeDB()

	sqlDB, err := gormDB.DB()
	assert.NoError(t, err)

	repo := leave.NewRepository(gormDB)

	mock.ExpectBegin()
	tx, err := sqlDB.Begin()
	assert.NoError(t, err)
	_ = repo.WithTx(tx)
	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())

	companyID := uuid.New()
	leaveID := uuid.New()

	// Runs on the pool: no BEGIN expected around it.
	mock.ExpectQuery(`SELECT \* FROM "leaves"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "status"}).
			AddRow(leaveID.String(), companyID.String(), leave.StatusPending))

	_, err = repo.FindByIDAndCompany(context.Background(), companyID.String(), leaveID.String())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
