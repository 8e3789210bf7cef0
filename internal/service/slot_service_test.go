package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type slotStoreStub struct {
	inserted  []models.Slot
	insertedN int
	listed    []models.Slot
	listErr   error
}

func (s *slotStoreStub) BulkInsert(ctx context.Context, exec sqlx.ExtContext, slots []models.Slot) (int, error) {
	s.inserted = slots
	if s.insertedN > 0 || len(slots) == 0 {
		return s.insertedN, nil
	}
	return len(slots), nil
}

func (s *slotStoreStub) List(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error) {
	return s.listed, s.listErr
}

type courtCatalogStub struct {
	courts    []models.Court
	schedules []models.CourtSchedule
}

func (s *courtCatalogStub) FindByID(ctx context.Context, id string) (*models.Court, error) {
	for i := range s.courts {
		if s.courts[i].ID == id {
			return &s.courts[i], nil
		}
	}
	return nil, assert.AnError
}

func (s *courtCatalogStub) List(ctx context.Context) ([]models.Court, error) {
	return s.courts, nil
}

func (s *courtCatalogStub) ListAllSchedules(ctx context.Context) ([]models.CourtSchedule, error) {
	return s.schedules, nil
}

type practiceCatalogStub struct {
	byCourt map[string][]models.PracticeDetail
}

func (s *practiceCatalogStub) ListByCourt(ctx context.Context, courtID string, excludeID string) ([]models.PracticeDetail, error) {
	return s.byCourt[courtID], nil
}

func newSlotService(slots slotStore, courts *courtCatalogStub, practices *practiceCatalogStub) *SlotService {
	return NewSlotService(slots, courts, practices, nil, nil, nil, nil, nil, nil, nil)
}

// 2025-06-02 is a Monday.
func mondayCourt() *courtCatalogStub {
	return &courtCatalogStub{
		courts: []models.Court{{ID: "court-1", Name: "Cancha 1", Active: true}},
		schedules: []models.CourtSchedule{
			{ID: "cs-1", CourtID: "court-1", DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "20:00", Available: true},
		},
	}
}

func TestSlotServiceGenerateExpandsHalfHours(t *testing.T) {
	slots := &slotStoreStub{}
	svc := newSlotService(slots, mondayCourt(), &practiceCatalogStub{})

	resp, err := svc.Generate(context.Background(), dto.GenerateSlotsRequest{StartDate: "2025-06-02", EndDate: "2025-06-08"})
	require.NoError(t, err)

	// One Monday in the range, 18:00-20:00 yields four half hours.
	require.Len(t, slots.inserted, 4)
	assert.Equal(t, 4, resp.InsertedCount)
	assert.False(t, resp.AlreadyGenerated)
	assert.Equal(t, "18:00", slots.inserted[0].StartTime)
	assert.Equal(t, "18:30", slots.inserted[0].EndTime)
	assert.Equal(t, "19:30", slots.inserted[3].StartTime)
	assert.Equal(t, "20:00", slots.inserted[3].EndTime)
	for _, slot := range slots.inserted {
		assert.Equal(t, models.SlotFree, slot.State)
		assert.Equal(t, "2025-06-02", slot.Date.Format("2006-01-02"))
	}
}

func TestSlotServiceGenerateMarksPracticeSlots(t *testing.T) {
	slots := &slotStoreStub{}
	practices := &practiceCatalogStub{byCourt: map[string][]models.PracticeDetail{
		"court-1": {{
			Practice: models.Practice{
				ID:        "practice-1",
				CourtID:   "court-1",
				StartDate: mustDate(t, "2025-06-01"),
				EndDate:   mustDate(t, "2025-06-30"),
			},
			Schedules: []models.PracticeSchedule{
				{DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "19:00"},
			},
		}},
	}}
	svc := newSlotService(slots, mondayCourt(), practices)

	_, err := svc.Generate(context.Background(), dto.GenerateSlotsRequest{StartDate: "2025-06-02", EndDate: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, slots.inserted, 4)

	// Half-open coverage: 18:00 and 18:30 are claimed, 19:00 is not.
	assert.Equal(t, models.SlotPractice, slots.inserted[0].State)
	require.NotNil(t, slots.inserted[0].PracticeID)
	assert.Equal(t, "practice-1", *slots.inserted[0].PracticeID)
	assert.Equal(t, models.SlotPractice, slots.inserted[1].State)
	assert.Equal(t, models.SlotFree, slots.inserted[2].State)
	assert.Nil(t, slots.inserted[2].PracticeID)
	assert.Equal(t, models.SlotFree, slots.inserted[3].State)
}

func TestSlotServiceGeneratePracticeOutsideDateRangeIgnored(t *testing.T) {
	slots := &slotStoreStub{}
	practices := &practiceCatalogStub{byCourt: map[string][]models.PracticeDetail{
		"court-1": {{
			Practice: models.Practice{
				ID:        "practice-1",
				CourtID:   "court-1",
				StartDate: mustDate(t, "2025-07-01"),
				EndDate:   mustDate(t, "2025-07-31"),
			},
			Schedules: []models.PracticeSchedule{
				{DayOfWeek: models.Monday, StartTime: "18:00", EndTime: "19:00"},
			},
		}},
	}}
	svc := newSlotService(slots, mondayCourt(), practices)

	_, err := svc.Generate(context.Background(), dto.GenerateSlotsRequest{StartDate: "2025-06-02", EndDate: "2025-06-02"})
	require.NoError(t, err)
	for _, slot := range slots.inserted {
		assert.Equal(t, models.SlotFree, slot.State)
	}
}

func TestSlotServiceGenerateDropsPartialTrailingSlot(t *testing.T) {
	slots := &slotStoreStub{}
	courts := &courtCatalogStub{
		courts: []models.Court{{ID: "court-1", Active: true}},
		schedules: []models.CourtSchedule{
			{CourtID: "court-1", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "10:15", Available: true},
		},
	}
	svc := newSlotService(slots, courts, &practiceCatalogStub{})

	_, err := svc.Generate(context.Background(), dto.GenerateSlotsRequest{StartDate: "2025-06-02", EndDate: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, slots.inserted, 2)
	assert.Equal(t, "10:00", slots.inserted[1].EndTime)
}

func TestSlotServiceGenerateSkipsInactiveCourtsAndClosedWindows(t *testing.T) {
	slots := &slotStoreStub{}
	courts := &courtCatalogStub{
		courts: []models.Court{
			{ID: "court-1", Active: false},
			{ID: "court-2", Active: true},
		},
		schedules: []models.CourtSchedule{
			{CourtID: "court-1", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00", Available: true},
			{CourtID: "court-2", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "12:00", Available: false},
		},
	}
	svc := newSlotService(slots, courts, &practiceCatalogStub{})

	resp, err := svc.Generate(context.Background(), dto.GenerateSlotsRequest{StartDate: "2025-06-02", EndDate: "2025-06-02"})
	require.NoError(t, err)
	assert.Empty(t, slots.inserted)
	assert.Equal(t, 0, resp.InsertedCount)
	assert.False(t, resp.AlreadyGenerated)
}

func TestSlotServiceGenerateAlreadyGenerated(t *testing.T) {
	svc := newSlotService(&slotStoreAlreadyDone{}, mondayCourt(), &practiceCatalogStub{})

	resp, err := svc.Generate(context.Background(), dto.GenerateSlotsRequest{StartDate: "2025-06-02", EndDate: "2025-06-02"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.InsertedCount)
	assert.True(t, resp.AlreadyGenerated)
}

type slotStoreAlreadyDone struct{}

func (slotStoreAlreadyDone) BulkInsert(ctx context.Context, exec sqlx.ExtContext, slots []models.Slot) (int, error) {
	return 0, nil
}

func (slotStoreAlreadyDone) List(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error) {
	return nil, nil
}

func TestSlotServiceGenerateRejectsInvertedRange(t *testing.T) {
	svc := newSlotService(&slotStoreStub{}, mondayCourt(), &practiceCatalogStub{})

	_, err := svc.Generate(context.Background(), dto.GenerateSlotsRequest{StartDate: "2025-06-10", EndDate: "2025-06-02"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSlotServiceListRejectsUnknownState(t *testing.T) {
	svc := newSlotService(&slotStoreStub{}, mondayCourt(), &practiceCatalogStub{})

	_, err := svc.List(context.Background(), dto.SlotQuery{CourtID: "court-1", Date: "2025-06-02", State: "TAKEN"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
