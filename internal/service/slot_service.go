package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/export"
)

const dateLayout = "2006-01-02"

// slotHalfHour is the fixed duration of every generated slot.
const slotHalfHour = 30

type slotStore interface {
	BulkInsert(ctx context.Context, exec sqlx.ExtContext, slots []models.Slot) (int, error)
	List(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error)
}

type courtCatalog interface {
	FindByID(ctx context.Context, id string) (*models.Court, error)
	List(ctx context.Context) ([]models.Court, error)
	ListAllSchedules(ctx context.Context) ([]models.CourtSchedule, error)
}

type practiceCatalog interface {
	ListByCourt(ctx context.Context, courtID string, excludeID string) ([]models.PracticeDetail, error)
}

type sheetExporter interface {
	Render(sheet export.Sheet) ([]byte, error)
}

type sheetArchive interface {
	Save(name string, data []byte) (string, error)
}

// SlotService materialises bookable half-hour slots from weekly court
// schedules and serves slot listings.
type SlotService struct {
	slots     slotStore
	courts    courtCatalog
	practices practiceCatalog
	cache     *CacheService
	metrics   *MetricsService
	csv       sheetExporter
	pdf       sheetExporter
	archive   sheetArchive
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSlotService wires the slot generator dependencies.
func NewSlotService(
	slots slotStore,
	courts courtCatalog,
	practices practiceCatalog,
	cache *CacheService,
	metrics *MetricsService,
	csv sheetExporter,
	pdf sheetExporter,
	archive sheetArchive,
	validate *validator.Validate,
	logger *zap.Logger,
) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{
		slots:     slots,
		courts:    courts,
		practices: practices,
		cache:     cache,
		metrics:   metrics,
		csv:       csv,
		pdf:       pdf,
		archive:   archive,
		validator: validate,
		logger:    logger,
	}
}

// Generate expands every court's weekly schedule over the inclusive date
// range into half-hour slots, marking any window claimed by a practice. Slots
// already present are left untouched, so re-running a range is harmless.
func (s *SlotService) Generate(ctx context.Context, req dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must use YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must use YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not precede startDate")
	}

	courts, err := s.courts.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load courts")
	}
	if len(courts) == 0 {
		return &dto.GenerateSlotsResponse{}, nil
	}

	allSchedules, err := s.courts.ListAllSchedules(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load court schedules")
	}
	schedulesByCourt := make(map[string][]models.CourtSchedule, len(courts))
	for _, entry := range allSchedules {
		schedulesByCourt[entry.CourtID] = append(schedulesByCourt[entry.CourtID], entry)
	}

	practicesByCourt := make(map[string][]models.PracticeDetail, len(courts))
	for _, court := range courts {
		details, err := s.practices.ListByCourt(ctx, court.ID, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load court practices")
		}
		practicesByCourt[court.ID] = details
	}

	candidates := make([]models.Slot, 0, 256)
	for _, court := range courts {
		if !court.Active {
			continue
		}
		courtSchedules := schedulesByCourt[court.ID]
		if len(courtSchedules) == 0 {
			continue
		}
		for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
			day := models.DayOfWeekFromDate(date)
			for _, window := range courtSchedules {
				if window.DayOfWeek != day || !window.Available {
					continue
				}
				expanded, err := s.expandWindow(court.ID, date, day, window, practicesByCourt[court.ID])
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, expanded...)
			}
		}
	}

	if len(candidates) == 0 {
		return &dto.GenerateSlotsResponse{}, nil
	}

	inserted, err := s.slots.BulkInsert(ctx, nil, candidates)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist generated slots")
	}
	s.metrics.AddSlotsGenerated(inserted)
	if inserted > 0 {
		if err := s.cache.Invalidate(ctx, "slots:*"); err != nil {
			s.logger.Warn("slot cache invalidation failed", zap.Error(err))
		}
	}
	s.logger.Info("slot generation finished",
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("candidates", len(candidates)),
		zap.Int("inserted", inserted),
	)

	return &dto.GenerateSlotsResponse{
		InsertedCount:    inserted,
		AlreadyGenerated: inserted == 0,
	}, nil
}

// expandWindow steps one open-hours window by half hours, resolving practice
// occupancy for each emitted slot. A trailing remainder shorter than a half
// hour is dropped.
func (s *SlotService) expandWindow(courtID string, date time.Time, day models.DayOfWeek, window models.CourtSchedule, practices []models.PracticeDetail) ([]models.Slot, error) {
	startMin, endMin, err := models.ValidateClockWindow(window.StartTime, window.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("court %s has a malformed %s window", courtID, day))
	}
	slots := make([]models.Slot, 0, (endMin-startMin)/slotHalfHour)
	for min := startMin; min+slotHalfHour <= endMin; min += slotHalfHour {
		slot := models.Slot{
			CourtID:   courtID,
			Date:      date,
			StartTime: models.FormatClock(min),
			EndTime:   models.FormatClock(min + slotHalfHour),
			State:     models.SlotFree,
		}
		if practiceID := claimingPractice(practices, date, day, min); practiceID != "" {
			id := practiceID
			slot.State = models.SlotPractice
			slot.PracticeID = &id
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// claimingPractice returns the id of the first practice whose weekly schedule
// covers the slot start on the given date. Coverage is half open: a practice
// running 18:00-19:00 claims the 18:00 and 18:30 slots but not 19:00.
func claimingPractice(practices []models.PracticeDetail, date time.Time, day models.DayOfWeek, slotStartMin int) string {
	for _, practice := range practices {
		if date.Before(practice.StartDate) || date.After(practice.EndDate) {
			continue
		}
		for _, entry := range practice.Schedules {
			if entry.DayOfWeek != day {
				continue
			}
			pStart, pEnd, err := models.ValidateClockWindow(entry.StartTime, entry.EndTime)
			if err != nil {
				continue
			}
			if pStart <= slotStartMin && slotStartMin < pEnd {
				return practice.ID
			}
		}
	}
	return ""
}

// List returns the slots of a court on a date, optionally filtered by state.
// Listings are cached per court, date and state.
func (s *SlotService) List(ctx context.Context, query dto.SlotQuery) ([]models.Slot, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot query")
	}
	date, err := time.Parse(dateLayout, query.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}
	var state models.SlotState
	if query.State != "" {
		state, err = models.ParseSlotState(query.State)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%s", query.CourtID, query.Date, state)
	var cached []models.Slot
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	slots, err := s.slots.List(ctx, models.SlotFilter{CourtID: query.CourtID, Date: &date, State: state})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list slots")
	}
	if err := s.cache.Set(ctx, cacheKey, slots, 0); err != nil {
		s.logger.Warn("slot cache set failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return slots, nil
}

// Sheet renders the slot grid of a court and date as a printable CSV or PDF
// document for the front desk.
func (s *SlotService) Sheet(ctx context.Context, query dto.SlotSheetQuery) ([]byte, string, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sheet query")
	}
	date, err := time.Parse(dateLayout, query.Date)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}
	court, err := s.courts.FindByID(ctx, query.CourtID)
	if err != nil {
		return nil, "", mapLookupError(err, "court not found")
	}
	slots, err := s.slots.List(ctx, models.SlotFilter{CourtID: query.CourtID, Date: &date})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list slots")
	}

	sheet := export.Sheet{
		Title:   fmt.Sprintf("%s - %s", court.Name, query.Date),
		Columns: []string{"Inicio", "Fin", "Estado", "Practica"},
		Rows:    make([][]string, 0, len(slots)),
	}
	for _, slot := range slots {
		practiceID := ""
		if slot.PracticeID != nil {
			practiceID = *slot.PracticeID
		}
		sheet.Rows = append(sheet.Rows, []string{slot.StartTime, slot.EndTime, string(slot.State), practiceID})
	}

	if query.Format == "pdf" {
		payload, err := s.pdf.Render(sheet)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf sheet")
		}
		s.archiveSheet(query, "pdf", payload)
		return payload, "application/pdf", nil
	}
	payload, err := s.csv.Render(sheet)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv sheet")
	}
	s.archiveSheet(query, "csv", payload)
	return payload, "text/csv", nil
}

// archiveSheet keeps a reprintable copy of the rendered document. A
// failed write never fails the request.
func (s *SlotService) archiveSheet(query dto.SlotSheetQuery, ext string, payload []byte) {
	if s.archive == nil {
		return
	}
	name := fmt.Sprintf("%s/%s.%s", query.CourtID, query.Date, ext)
	if _, err := s.archive.Save(name, payload); err != nil {
		s.logger.Warn("sheet archive write failed", zap.String("name", name), zap.Error(err))
	}
}
