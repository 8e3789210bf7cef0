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
)

type practiceStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, practice *models.Practice) error
	Update(ctx context.Context, exec sqlx.ExtContext, practice *models.Practice) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
	FindByID(ctx context.Context, id string) (*models.Practice, error)
	FindDetail(ctx context.Context, id string) (*models.PracticeDetail, error)
	List(ctx context.Context) ([]models.Practice, error)
	ListByCourt(ctx context.Context, courtID string, excludeID string) ([]models.PracticeDetail, error)
	ListByTrainer(ctx context.Context, trainerID string, excludeID string) ([]models.PracticeDetail, error)
	ReplaceSchedules(ctx context.Context, exec sqlx.ExtContext, practiceID string, schedules []models.PracticeSchedule) error
	ReplaceTrainers(ctx context.Context, exec sqlx.ExtContext, practiceID string, trainerIDs []string) error
}

type practiceCourtReader interface {
	FindByID(ctx context.Context, id string) (*models.Court, error)
}

type practiceTrainerReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Trainer, error)
}

type practiceSlotReleaser interface {
	ReleasePracticeWindow(ctx context.Context, exec sqlx.ExtContext, courtID string, date time.Time, practiceID, startTime, endTime string) (int, error)
}

// PracticeService manages trainer-led recurring practices and the slots they
// occupy.
type PracticeService struct {
	practices practiceStore
	courts    practiceCourtReader
	trainers  practiceTrainerReader
	slots     practiceSlotReleaser
	tx        txProvider
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPracticeService wires practice dependencies.
func NewPracticeService(
	practices practiceStore,
	courts practiceCourtReader,
	trainers practiceTrainerReader,
	slots practiceSlotReleaser,
	tx txProvider,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *PracticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PracticeService{
		practices: practices,
		courts:    courts,
		trainers:  trainers,
		slots:     slots,
		tx:        tx,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// practiceInput is a validated SavePracticeRequest ready for persistence.
type practiceInput struct {
	sport     models.Sport
	startDate time.Time
	endDate   time.Time
	schedules []models.PracticeSchedule
}

func (s *PracticeService) validateSave(ctx context.Context, req dto.SavePracticeRequest, excludeID string) (*practiceInput, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid practice request")
	}
	sport, err := models.ParseSport(req.Sport)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
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

	if _, err := s.courts.FindByID(ctx, req.CourtID); err != nil {
		return nil, mapLookupError(err, "court not found")
	}

	schedules := make([]models.PracticeSchedule, 0, len(req.Schedules))
	for _, entry := range req.Schedules {
		day, err := models.ParseDayOfWeek(entry.DayOfWeek)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		if _, _, err := models.ValidateClockWindow(entry.StartTime, entry.EndTime); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		schedules = append(schedules, models.PracticeSchedule{
			DayOfWeek: day,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		})
	}

	if len(req.TrainerIDs) > 0 {
		trainers, err := s.trainers.FindByIDs(ctx, req.TrainerIDs)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load trainers")
		}
		known := make(map[string]struct{}, len(trainers))
		for _, trainer := range trainers {
			known[trainer.ID] = struct{}{}
		}
		for _, id := range req.TrainerIDs {
			if _, ok := known[id]; !ok {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("trainer %s does not exist", id))
			}
		}
	}

	if err := s.checkTrainerConflicts(ctx, req.TrainerIDs, schedules, excludeID); err != nil {
		return nil, err
	}
	if err := s.checkCourtConflicts(ctx, req.CourtID, schedules, excludeID); err != nil {
		return nil, err
	}

	return &practiceInput{sport: sport, startDate: startDate, endDate: endDate, schedules: schedules}, nil
}

// checkTrainerConflicts rejects weekly windows that overlap another practice
// of the same trainer on the same day. Overlap is open ended on both sides:
// back to back windows do not collide.
func (s *PracticeService) checkTrainerConflicts(ctx context.Context, trainerIDs []string, schedules []models.PracticeSchedule, excludeID string) error {
	for _, trainerID := range trainerIDs {
		others, err := s.practices.ListByTrainer(ctx, trainerID, excludeID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load trainer practices")
		}
		if conflict := findScheduleOverlap(schedules, others); conflict != nil {
			return appErrors.Clone(appErrors.ErrConflict,
				fmt.Sprintf("trainer %s already leads a practice on %s between %s and %s",
					trainerID, conflict.DayOfWeek, conflict.StartTime, conflict.EndTime))
		}
	}
	return nil
}

// checkCourtConflicts rejects weekly windows that overlap another practice
// hosted on the same court.
func (s *PracticeService) checkCourtConflicts(ctx context.Context, courtID string, schedules []models.PracticeSchedule, excludeID string) error {
	others, err := s.practices.ListByCourt(ctx, courtID, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load court practices")
	}
	if conflict := findScheduleOverlap(schedules, others); conflict != nil {
		return appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("court already hosts a practice on %s between %s and %s",
				conflict.DayOfWeek, conflict.StartTime, conflict.EndTime))
	}
	return nil
}

// findScheduleOverlap returns the first existing schedule entry that overlaps
// any of the incoming entries on the same weekday.
func findScheduleOverlap(incoming []models.PracticeSchedule, existing []models.PracticeDetail) *models.PracticeSchedule {
	for _, detail := range existing {
		for _, have := range detail.Schedules {
			haveStart, haveEnd, err := models.ValidateClockWindow(have.StartTime, have.EndTime)
			if err != nil {
				continue
			}
			for _, want := range incoming {
				if want.DayOfWeek != have.DayOfWeek {
					continue
				}
				wantStart, wantEnd, err := models.ValidateClockWindow(want.StartTime, want.EndTime)
				if err != nil {
					continue
				}
				if wantStart < haveEnd && wantEnd > haveStart {
					entry := have
					return &entry
				}
			}
		}
	}
	return nil
}

// Create registers a new practice with its weekly schedule and trainer set.
func (s *PracticeService) Create(ctx context.Context, req dto.SavePracticeRequest) (*models.PracticeDetail, error) {
	input, err := s.validateSave(ctx, req, "")
	if err != nil {
		return nil, err
	}

	practice := models.Practice{
		Sport:     input.sport,
		CourtID:   req.CourtID,
		StartDate: input.startDate,
		EndDate:   input.endDate,
		Price:     req.Price,
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin practice create")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.practices.Create(ctx, tx, &practice); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create practice")
		return nil, err
	}
	if err = s.practices.ReplaceSchedules(ctx, tx, practice.ID, input.schedules); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store practice schedules")
		return nil, err
	}
	if err = s.practices.ReplaceTrainers(ctx, tx, practice.ID, req.TrainerIDs); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store practice trainers")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit practice create")
		return nil, err
	}

	s.metrics.IncPracticeCreated()
	s.logger.Info("practice created",
		zap.String("practice_id", practice.ID),
		zap.String("court_id", practice.CourtID),
		zap.String("sport", string(practice.Sport)),
	)
	return s.detail(ctx, practice.ID)
}

// Update fully replaces a practice's fields, schedule and trainer set.
func (s *PracticeService) Update(ctx context.Context, practiceID string, req dto.SavePracticeRequest) (*models.PracticeDetail, error) {
	existing, err := s.practices.FindByID(ctx, practiceID)
	if err != nil {
		return nil, mapLookupError(err, "practice not found")
	}
	input, err := s.validateSave(ctx, req, practiceID)
	if err != nil {
		return nil, err
	}

	existing.Sport = input.sport
	existing.CourtID = req.CourtID
	existing.StartDate = input.startDate
	existing.EndDate = input.endDate
	existing.Price = req.Price

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin practice update")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.practices.Update(ctx, tx, existing); err != nil {
		err = mapLookupError(err, "practice not found")
		return nil, err
	}
	if err = s.practices.ReplaceSchedules(ctx, tx, practiceID, input.schedules); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store practice schedules")
		return nil, err
	}
	if err = s.practices.ReplaceTrainers(ctx, tx, practiceID, req.TrainerIDs); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store practice trainers")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit practice update")
		return nil, err
	}

	s.logger.Info("practice updated", zap.String("practice_id", practiceID))
	return s.detail(ctx, practiceID)
}

// Delete removes a practice and frees every slot it occupied. It walks the
// practice's date range, matches the weekly schedule against each date and
// releases the covered windows, then drops the practice with its schedule and
// trainer links.
func (s *PracticeService) Delete(ctx context.Context, practiceID string) (*dto.DeletePracticeResponse, error) {
	detail, err := s.practices.FindDetail(ctx, practiceID)
	if err != nil {
		return nil, mapLookupError(err, "practice not found")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin practice delete")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	freed := 0
	processed := make([]string, 0, 16)
	for date := detail.StartDate; !date.After(detail.EndDate); date = date.AddDate(0, 0, 1) {
		day := models.DayOfWeekFromDate(date)
		matched := false
		for _, entry := range detail.Schedules {
			if entry.DayOfWeek != day {
				continue
			}
			matched = true
			count, releaseErr := s.slots.ReleasePracticeWindow(ctx, tx, detail.CourtID, date, practiceID, entry.StartTime, entry.EndTime)
			if releaseErr != nil {
				err = appErrors.Wrap(releaseErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "release practice slots")
				return nil, err
			}
			freed += count
		}
		if matched {
			processed = append(processed, date.Format(dateLayout))
		}
	}

	if err = s.practices.ReplaceTrainers(ctx, tx, practiceID, nil); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "detach practice trainers")
		return nil, err
	}
	if err = s.practices.ReplaceSchedules(ctx, tx, practiceID, nil); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "drop practice schedules")
		return nil, err
	}
	if err = s.practices.Delete(ctx, tx, practiceID); err != nil {
		err = mapLookupError(err, "practice not found")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit practice delete")
		return nil, err
	}

	s.metrics.IncPracticeDeleted()
	s.metrics.AddPracticeSlotsFreed(freed)
	if cacheErr := s.cache.Invalidate(ctx, "slots:*"); cacheErr != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(cacheErr))
	}
	s.logger.Info("practice deleted",
		zap.String("practice_id", practiceID),
		zap.Int("freed_slots", freed),
		zap.Int("processed_dates", len(processed)),
	)
	return &dto.DeletePracticeResponse{FreedSlotCount: freed, ProcessedDates: processed}, nil
}

// Get loads one practice with its schedule and trainers.
func (s *PracticeService) Get(ctx context.Context, practiceID string) (*models.PracticeDetail, error) {
	return s.detail(ctx, practiceID)
}

// List returns every practice.
func (s *PracticeService) List(ctx context.Context) ([]models.Practice, error) {
	practices, err := s.practices.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list practices")
	}
	return practices, nil
}

func (s *PracticeService) detail(ctx context.Context, practiceID string) (*models.PracticeDetail, error) {
	detail, err := s.practices.FindDetail(ctx, practiceID)
	if err != nil {
		return nil, mapLookupError(err, "practice not found")
	}
	return detail, nil
}
