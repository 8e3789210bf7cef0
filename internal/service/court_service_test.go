package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type courtStoreStub struct {
	court         *models.Court
	schedules     []models.CourtSchedule
	practiceCount int
	deleted       []string
}

func (s *courtStoreStub) Create(ctx context.Context, exec sqlx.ExtContext, court *models.Court) error {
	if court.ID == "" {
		court.ID = uuid.NewString()
	}
	s.court = court
	return nil
}

func (s *courtStoreStub) Update(ctx context.Context, exec sqlx.ExtContext, court *models.Court) error {
	s.court = court
	return nil
}

func (s *courtStoreStub) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *courtStoreStub) FindByID(ctx context.Context, id string) (*models.Court, error) {
	if s.court == nil {
		return nil, sql.ErrNoRows
	}
	return s.court, nil
}

func (s *courtStoreStub) List(ctx context.Context) ([]models.Court, error) {
	if s.court == nil {
		return nil, nil
	}
	return []models.Court{*s.court}, nil
}

func (s *courtStoreStub) ReplaceSchedules(ctx context.Context, exec sqlx.ExtContext, courtID string, schedules []models.CourtSchedule) error {
	s.schedules = schedules
	return nil
}

func (s *courtStoreStub) ListSchedules(ctx context.Context, courtID string) ([]models.CourtSchedule, error) {
	return s.schedules, nil
}

func (s *courtStoreStub) CountPractices(ctx context.Context, courtID string) (int, error) {
	return s.practiceCount, nil
}

func createCourtRequest() dto.CreateCourtRequest {
	return dto.CreateCourtRequest{
		Name:        "Cancha 1",
		Sports:      []string{"futbol", "HANDBALL"},
		Indoor:      false,
		Capacity:    10,
		HourlyPrice: 12000,
		Schedules: []dto.CourtScheduleRequest{
			{DayOfWeek: "Lunes", StartTime: "09:00", EndTime: "22:00"},
			{DayOfWeek: "sábado", StartTime: "10:00", EndTime: "20:00"},
		},
	}
}

func TestCourtServiceCreateNormalisesInput(t *testing.T) {
	store := &courtStoreStub{}
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	svc := NewCourtService(store, tx, nil, nil, nil)

	detail, err := svc.Create(context.Background(), createCourtRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"FUTBOL", "HANDBALL"}, []string(store.court.Sports))
	assert.True(t, store.court.Active)
	require.Len(t, store.schedules, 2)
	assert.Equal(t, models.Monday, store.schedules[0].DayOfWeek)
	assert.Equal(t, models.Saturday, store.schedules[1].DayOfWeek)
	assert.True(t, store.schedules[0].Available)
	assert.Equal(t, "Cancha 1", detail.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtServiceCreateRejectsUnknownSport(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewCourtService(&courtStoreStub{}, tx, nil, nil, nil)

	req := createCourtRequest()
	req.Sports = []string{"CRICKET"}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourtServiceCreateRejectsInvertedWindow(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewCourtService(&courtStoreStub{}, tx, nil, nil, nil)

	req := createCourtRequest()
	req.Schedules[0].StartTime = "22:00"
	req.Schedules[0].EndTime = "09:00"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourtServiceDeleteBlockedByPractices(t *testing.T) {
	store := &courtStoreStub{court: &models.Court{ID: "court-1"}, practiceCount: 2}
	tx, _ := newTxProviderMock(t)
	svc := NewCourtService(store, tx, nil, nil, nil)

	err := svc.Delete(context.Background(), "court-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.deleted)
}

func TestCourtServiceDeleteWithoutPractices(t *testing.T) {
	store := &courtStoreStub{court: &models.Court{ID: "court-1"}}
	tx, _ := newTxProviderMock(t)
	svc := NewCourtService(store, tx, nil, nil, nil)

	err := svc.Delete(context.Background(), "court-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"court-1"}, store.deleted)
}

func TestCourtServiceUpdateReplacesSchedulesWhenProvided(t *testing.T) {
	store := &courtStoreStub{
		court:     &models.Court{ID: "court-1", Name: "Cancha 1", Active: true},
		schedules: []models.CourtSchedule{{DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "22:00"}},
	}
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	svc := NewCourtService(store, tx, nil, nil, nil)

	name := "Cancha Central"
	_, err := svc.Update(context.Background(), "court-1", dto.UpdateCourtRequest{
		Name: &name,
		Schedules: []dto.CourtScheduleRequest{
			{DayOfWeek: "DOMINGO", StartTime: "10:00", EndTime: "14:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cancha Central", store.court.Name)
	require.Len(t, store.schedules, 1)
	assert.Equal(t, models.Sunday, store.schedules[0].DayOfWeek)
	require.NoError(t, mock.ExpectationsWereMet())
}
