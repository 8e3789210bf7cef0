package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/models"
)

func newRentalRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRentalRepositoryCreateDefaults(t *testing.T) {
	db, mock, cleanup := newRentalRepoMock(t)
	defer cleanup()
	repo := NewRentalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rentals")).
		WithArgs(sqlmock.AnyArg(), "member-1", "slot-1", sqlmock.AnyArg(), string(models.RentalReserved), nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rental := &models.Rental{MemberID: "member-1", SlotID: "slot-1"}
	require.NoError(t, repo.Create(context.Background(), nil, rental))
	assert.NotEmpty(t, rental.ID)
	assert.Equal(t, models.RentalReserved, rental.State)
	assert.False(t, rental.ReservedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryMarkCancelled(t *testing.T) {
	db, mock, cleanup := newRentalRepoMock(t)
	defer cleanup()
	repo := NewRentalRepository(db)

	reason := "LLUVIA"
	at := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rentals SET state = $1, cancel_reason = $2, cancelled_at = $3 WHERE id = $4")).
		WithArgs(string(models.RentalCancelled), reason, at, "rental-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkCancelled(context.Background(), nil, "rental-1", &reason, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryMarkCancelledNotFound(t *testing.T) {
	db, mock, cleanup := newRentalRepoMock(t)
	defer cleanup()
	repo := NewRentalRepository(db)

	at := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rentals SET state = $1, cancel_reason = $2, cancelled_at = $3 WHERE id = $4")).
		WithArgs(string(models.RentalCancelled), nil, at, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkCancelled(context.Background(), nil, "missing", nil, at)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryMarkCompleted(t *testing.T) {
	db, mock, cleanup := newRentalRepoMock(t)
	defer cleanup()
	repo := NewRentalRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE rentals SET state = $1 WHERE id = $2 AND state = $3")).
		WithArgs(string(models.RentalCompleted), "rental-1", string(models.RentalReserved)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	done, err := repo.MarkCompleted(context.Background(), nil, "rental-1")
	require.NoError(t, err)
	assert.True(t, done)
	assert.NoError(t, mock.ExpectationsWereMet())
}
