package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type txProviderMock struct {
	db *sqlx.DB
}

func newTxProviderMock(t *testing.T) (*txProviderMock, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb}, mock
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

type rentalStoreStub struct {
	created       []models.Rental
	found         *models.Rental
	cancelled     []string
	cancelReasons []*string
	elapsed       []models.Rental
	completed     []string
}

func (s *rentalStoreStub) Create(ctx context.Context, exec sqlx.ExtContext, rental *models.Rental) error {
	if rental.ID == "" {
		rental.ID = uuid.NewString()
	}
	rental.State = models.RentalReserved
	s.created = append(s.created, *rental)
	return nil
}

func (s *rentalStoreStub) FindByID(ctx context.Context, id string) (*models.Rental, error) {
	if s.found == nil {
		return nil, sql.ErrNoRows
	}
	return s.found, nil
}

func (s *rentalStoreStub) MarkCancelled(ctx context.Context, exec sqlx.ExtContext, id string, reason *string, cancelledAt time.Time) error {
	s.cancelled = append(s.cancelled, id)
	s.cancelReasons = append(s.cancelReasons, reason)
	return nil
}

func (s *rentalStoreStub) List(ctx context.Context, query models.RentalFilter) ([]models.RentalDetail, error) {
	return nil, nil
}

func (s *rentalStoreStub) ListElapsedReserved(ctx context.Context, today time.Time, nowClock string) ([]models.Rental, error) {
	return s.elapsed, nil
}

func (s *rentalStoreStub) MarkCompleted(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	s.completed = append(s.completed, id)
	return true, nil
}

type rentalSlotStoreStub struct {
	slots      []models.Slot
	claimFail  map[string]bool
	claimed    []string
	released   []string
	releasedOK bool
}

func (s *rentalSlotStoreStub) FindForRental(ctx context.Context, courtID string, date time.Time, startTimes []string) ([]models.Slot, error) {
	return s.slots, nil
}

func (s *rentalSlotStoreStub) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	for i := range s.slots {
		if s.slots[i].ID == id {
			return &s.slots[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *rentalSlotStoreStub) ClaimForRental(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error) {
	if s.claimFail[slotID] {
		return false, nil
	}
	s.claimed = append(s.claimed, slotID)
	return true, nil
}

func (s *rentalSlotStoreStub) ReleaseRented(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error) {
	s.released = append(s.released, slotID)
	return s.releasedOK, nil
}

type memberReaderStub struct {
	member *models.Member
}

func (s *memberReaderStub) FindByID(ctx context.Context, id string) (*models.Member, error) {
	if s.member == nil {
		return nil, sql.ErrNoRows
	}
	return s.member, nil
}

func activeMember() *memberReaderStub {
	return &memberReaderStub{member: &models.Member{ID: "member-1", Status: models.MemberActive}}
}

func freeSlots(starts ...string) []models.Slot {
	slots := make([]models.Slot, 0, len(starts))
	for _, start := range starts {
		startMin, _ := models.ParseClock(start)
		slots = append(slots, models.Slot{
			ID:        "slot-" + start,
			CourtID:   "court-1",
			StartTime: start,
			EndTime:   models.FormatClock(startMin + 30),
			State:     models.SlotFree,
		})
	}
	return slots
}

func slotRequests(starts ...string) []dto.RentalSlotRequest {
	reqs := make([]dto.RentalSlotRequest, 0, len(starts))
	for _, start := range starts {
		startMin, _ := models.ParseClock(start)
		reqs = append(reqs, dto.RentalSlotRequest{StartTime: start, EndTime: models.FormatClock(startMin + 30)})
	}
	return reqs
}

func TestRentalServiceReserveContiguousBlock(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rentals := &rentalStoreStub{}
	slots := &rentalSlotStoreStub{slots: freeSlots("18:00", "18:30", "19:00")}
	svc := NewRentalService(rentals, slots, activeMember(), tx, nil, nil, nil, nil)

	created, err := svc.Reserve(context.Background(), dto.ReserveRentalRequest{
		MemberID: "member-1",
		CourtID:  "court-1",
		Date:     "2025-06-02",
		Slots:    slotRequests("18:30", "18:00", "19:00"),
	})
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Len(t, slots.claimed, 3)
	for _, rental := range created {
		assert.Equal(t, models.RentalReserved, rental.State)
		assert.Equal(t, "member-1", rental.MemberID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalServiceReserveRejectsTooManySlots(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewRentalService(&rentalStoreStub{}, &rentalSlotStoreStub{}, activeMember(), tx, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), dto.ReserveRentalRequest{
		MemberID: "member-1",
		CourtID:  "court-1",
		Date:     "2025-06-02",
		Slots:    slotRequests("09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRentalServiceReserveRejectsGap(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewRentalService(&rentalStoreStub{}, &rentalSlotStoreStub{}, activeMember(), tx, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), dto.ReserveRentalRequest{
		MemberID: "member-1",
		CourtID:  "court-1",
		Date:     "2025-06-02",
		Slots:    slotRequests("18:00", "19:00"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestRentalServiceReserveRejectsOccupiedSlot(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	slots := &rentalSlotStoreStub{slots: freeSlots("18:00", "18:30")}
	slots.slots[1].State = models.SlotRented
	svc := NewRentalService(&rentalStoreStub{}, slots, activeMember(), tx, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), dto.ReserveRentalRequest{
		MemberID: "member-1",
		CourtID:  "court-1",
		Date:     "2025-06-02",
		Slots:    slotRequests("18:00", "18:30"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestRentalServiceReserveRollsBackOnLostRace(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rentals := &rentalStoreStub{}
	slots := &rentalSlotStoreStub{
		slots:     freeSlots("18:00", "18:30"),
		claimFail: map[string]bool{"slot-18:30": true},
	}
	svc := NewRentalService(rentals, slots, activeMember(), tx, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), dto.ReserveRentalRequest{
		MemberID: "member-1",
		CourtID:  "court-1",
		Date:     "2025-06-02",
		Slots:    slotRequests("18:00", "18:30"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalServiceReserveRejectsInactiveMember(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	member := &memberReaderStub{member: &models.Member{ID: "member-1", Status: models.MemberBlocked}}
	svc := NewRentalService(&rentalStoreStub{}, &rentalSlotStoreStub{}, member, tx, nil, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), dto.ReserveRentalRequest{
		MemberID: "member-1",
		CourtID:  "court-1",
		Date:     "2025-06-02",
		Slots:    slotRequests("18:00"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestRentalServiceCancelFreesSlot(t *testing.T) {
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rentals := &rentalStoreStub{found: &models.Rental{ID: "rental-1", SlotID: "slot-1", State: models.RentalReserved}}
	slots := &rentalSlotStoreStub{releasedOK: true}
	svc := NewRentalService(rentals, slots, activeMember(), tx, nil, nil, nil, nil)

	cancelled, err := svc.Cancel(context.Background(), "rental-1", dto.CancelRentalRequest{Reason: "lluvia"})
	require.NoError(t, err)
	assert.Equal(t, models.RentalCancelled, cancelled.State)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "lluvia", *cancelled.CancelReason)
	assert.Equal(t, []string{"slot-1"}, slots.released)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalServiceCancelAlreadyCancelled(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	rentals := &rentalStoreStub{found: &models.Rental{ID: "rental-1", SlotID: "slot-1", State: models.RentalCancelled}}
	svc := NewRentalService(rentals, &rentalSlotStoreStub{}, activeMember(), tx, nil, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), "rental-1", dto.CancelRentalRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestRentalServiceCancelNotFound(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewRentalService(&rentalStoreStub{}, &rentalSlotStoreStub{}, activeMember(), tx, nil, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), "missing", dto.CancelRentalRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRentalServiceCompleteElapsed(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	rentals := &rentalStoreStub{elapsed: []models.Rental{{ID: "rental-1"}, {ID: "rental-2"}}}
	svc := NewRentalService(rentals, &rentalSlotStoreStub{}, activeMember(), tx, nil, nil, nil, nil)

	completed, err := svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, completed)
	assert.Equal(t, []string{"rental-1", "rental-2"}, rentals.completed)
}
