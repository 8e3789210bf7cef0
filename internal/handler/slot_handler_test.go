package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	"github.com/clubsanmartin/club-api/internal/service"
	"github.com/clubsanmartin/club-api/pkg/response"
)

type slotStoreMock struct {
	slots []models.Slot
}

func (m *slotStoreMock) BulkInsert(ctx context.Context, exec sqlx.ExtContext, slots []models.Slot) (int, error) {
	return len(slots), nil
}

func (m *slotStoreMock) List(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error) {
	return m.slots, nil
}

type courtCatalogMock struct {
	courts    []models.Court
	schedules []models.CourtSchedule
}

func (m *courtCatalogMock) FindByID(ctx context.Context, id string) (*models.Court, error) {
	return &m.courts[0], nil
}

func (m *courtCatalogMock) List(ctx context.Context) ([]models.Court, error) {
	return m.courts, nil
}

func (m *courtCatalogMock) ListAllSchedules(ctx context.Context) ([]models.CourtSchedule, error) {
	return m.schedules, nil
}

type practiceCatalogMock struct{}

func (practiceCatalogMock) ListByCourt(ctx context.Context, courtID string, excludeID string) ([]models.PracticeDetail, error) {
	return nil, nil
}

func newSlotHandlerForTest(store *slotStoreMock) *SlotHandler {
	courts := &courtCatalogMock{
		courts: []models.Court{{ID: "court-1", Name: "Cancha 1", Active: true}},
		schedules: []models.CourtSchedule{
			{CourtID: "court-1", DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "19:00", Available: true},
		},
	}
	svc := service.NewSlotService(store, courts, practiceCatalogMock{}, nil, nil, nil, nil, nil, nil, nil)
	return NewSlotHandler(svc)
}

func TestSlotHandlerGenerate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSlotHandlerForTest(&slotStoreMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.GenerateSlotsRequest{StartDate: "2025-06-02", EndDate: "2025-06-02"})
	req, _ := http.NewRequest(http.MethodPost, "/slots/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Generate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var result dto.GenerateSlotsResponse
	require.NoError(t, json.Unmarshal(payload, &result))
	assert.Equal(t, 2, result.InsertedCount)
	assert.False(t, result.AlreadyGenerated)
}

func TestSlotHandlerGenerateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSlotHandlerForTest(&slotStoreMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/slots/generate", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotHandlerListMissingCourt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSlotHandlerForTest(&slotStoreMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/slots?date=2025-06-02", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlotHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &slotStoreMock{slots: []models.Slot{
		{ID: "slot-1", CourtID: "court-1", StartTime: "18:00", EndTime: "18:30", State: models.SlotFree},
	}}
	handler := newSlotHandlerForTest(store)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/slots?courtId=court-1&date=2025-06-02", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "slot-1")
}
