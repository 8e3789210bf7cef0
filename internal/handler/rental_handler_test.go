package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	"github.com/clubsanmartin/club-api/internal/service"
)

type rentalStoreMock struct {
	rental *models.Rental
}

func (m *rentalStoreMock) Create(ctx context.Context, exec sqlx.ExtContext, rental *models.Rental) error {
	rental.ID = "rental-1"
	rental.State = models.RentalReserved
	return nil
}

func (m *rentalStoreMock) FindByID(ctx context.Context, id string) (*models.Rental, error) {
	if m.rental == nil {
		return nil, sql.ErrNoRows
	}
	return m.rental, nil
}

func (m *rentalStoreMock) MarkCancelled(ctx context.Context, exec sqlx.ExtContext, id string, reason *string, cancelledAt time.Time) error {
	return nil
}

func (m *rentalStoreMock) List(ctx context.Context, query models.RentalFilter) ([]models.RentalDetail, error) {
	return nil, nil
}

func (m *rentalStoreMock) ListElapsedReserved(ctx context.Context, today time.Time, nowClock string) ([]models.Rental, error) {
	return nil, nil
}

func (m *rentalStoreMock) MarkCompleted(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	return true, nil
}

type rentalSlotStoreMock struct {
	slots []models.Slot
}

func (m *rentalSlotStoreMock) FindForRental(ctx context.Context, courtID string, date time.Time, startTimes []string) ([]models.Slot, error) {
	return m.slots, nil
}

func (m *rentalSlotStoreMock) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	return nil, sql.ErrNoRows
}

func (m *rentalSlotStoreMock) ClaimForRental(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error) {
	return true, nil
}

func (m *rentalSlotStoreMock) ReleaseRented(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error) {
	return true, nil
}

type memberReaderMock struct{}

func (memberReaderMock) FindByID(ctx context.Context, id string) (*models.Member, error) {
	return &models.Member{ID: id, Status: models.MemberActive}, nil
}

type handlerTxProvider struct {
	db *sqlx.DB
}

func (p *handlerTxProvider) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return p.db.BeginTxx(ctx, opts)
}

func newRentalHandlerForTest(t *testing.T, rentals *rentalStoreMock, slots *rentalSlotStoreMock) (*RentalHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	tx := &handlerTxProvider{db: sqlx.NewDb(db, "sqlmock")}
	svc := service.NewRentalService(rentals, slots, memberReaderMock{}, tx, nil, nil, nil, nil)
	return NewRentalHandler(svc), mock
}

func TestRentalHandlerReserve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	slots := &rentalSlotStoreMock{slots: []models.Slot{
		{ID: "slot-1", CourtID: "court-1", StartTime: "18:00", EndTime: "18:30", State: models.SlotFree},
	}}
	handler, mock := newRentalHandlerForTest(t, &rentalStoreMock{}, slots)
	mock.ExpectBegin()
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.ReserveRentalRequest{
		MemberID: "member-1",
		CourtID:  "court-1",
		Date:     "2025-06-02",
		Slots:    []dto.RentalSlotRequest{{StartTime: "18:00", EndTime: "18:30"}},
	})
	req, _ := http.NewRequest(http.MethodPost, "/rentals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Reserve(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "rental-1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalHandlerReserveInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newRentalHandlerForTest(t, &rentalStoreMock{}, &rentalSlotStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/rentals", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Reserve(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRentalHandlerCancelNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, _ := newRentalHandlerForTest(t, &rentalStoreMock{}, &rentalSlotStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/rentals/missing/cancel", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Cancel(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRentalHandlerCancelConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rentals := &rentalStoreMock{rental: &models.Rental{ID: "rental-1", SlotID: "slot-1", State: models.RentalCancelled}}
	handler, _ := newRentalHandlerForTest(t, rentals, &rentalSlotStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/rentals/rental-1/cancel", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "rental-1"}}

	handler.Cancel(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}
