package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/models"
)

func newCourtRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourtRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newCourtRepoMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courts")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	court := &models.Court{Name: "Cancha 1", Sports: []string{"FUTBOL"}, Capacity: 10, HourlyPrice: 2000, Active: true}
	require.NoError(t, repo.Create(context.Background(), nil, court))
	assert.NotEmpty(t, court.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtRepositoryReplaceSchedulesWholesale(t *testing.T) {
	db, mock, cleanup := newCourtRepoMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM court_schedules WHERE court_id = $1")).
		WithArgs("court-1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO court_schedules")).
		WithArgs(sqlmock.AnyArg(), "court-1", "LUNES", "08:00", "12:00", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO court_schedules")).
		WithArgs(sqlmock.AnyArg(), "court-1", "MARTES", "08:00", "12:00", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	schedules := []models.CourtSchedule{
		{DayOfWeek: models.Monday, StartTime: "08:00", EndTime: "12:00", Available: true},
		{DayOfWeek: models.Tuesday, StartTime: "08:00", EndTime: "12:00", Available: true},
	}
	require.NoError(t, repo.ReplaceSchedules(context.Background(), nil, "court-1", schedules))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtRepositoryCountPractices(t *testing.T) {
	db, mock, cleanup := newCourtRepoMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM practices WHERE court_id = $1")).
		WithArgs("court-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountPractices(context.Background(), "court-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newCourtRepoMock(t)
	defer cleanup()
	repo := NewCourtRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courts WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), nil, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
