package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type courtStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, court *models.Court) error
	Update(ctx context.Context, exec sqlx.ExtContext, court *models.Court) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
	FindByID(ctx context.Context, id string) (*models.Court, error)
	List(ctx context.Context) ([]models.Court, error)
	ReplaceSchedules(ctx context.Context, exec sqlx.ExtContext, courtID string, schedules []models.CourtSchedule) error
	ListSchedules(ctx context.Context, courtID string) ([]models.CourtSchedule, error)
	CountPractices(ctx context.Context, courtID string) (int, error)
}

// CourtService manages the court inventory and weekly open-hours schedules.
type CourtService struct {
	courts    courtStore
	tx        txProvider
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourtService wires court dependencies.
func NewCourtService(courts courtStore, tx txProvider, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourtService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourtService{courts: courts, tx: tx, cache: cache, validator: validate, logger: logger}
}

func (s *CourtService) buildSchedules(raw []dto.CourtScheduleRequest) ([]models.CourtSchedule, error) {
	schedules := make([]models.CourtSchedule, 0, len(raw))
	for _, entry := range raw {
		day, err := models.ParseDayOfWeek(entry.DayOfWeek)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		if _, _, err := models.ValidateClockWindow(entry.StartTime, entry.EndTime); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		available := true
		if entry.Available != nil {
			available = *entry.Available
		}
		schedules = append(schedules, models.CourtSchedule{
			DayOfWeek: day,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Available: available,
		})
	}
	return schedules, nil
}

func parseSports(raw []string) ([]string, error) {
	sports := make([]string, 0, len(raw))
	for _, entry := range raw {
		sport, err := models.ParseSport(entry)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		sports = append(sports, string(sport))
	}
	return sports, nil
}

// Create registers a court together with its weekly schedule.
func (s *CourtService) Create(ctx context.Context, req dto.CreateCourtRequest) (*models.CourtDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid court request")
	}
	sports, err := parseSports(req.Sports)
	if err != nil {
		return nil, err
	}
	schedules, err := s.buildSchedules(req.Schedules)
	if err != nil {
		return nil, err
	}

	court := models.Court{
		Name:        req.Name,
		Sports:      sports,
		Indoor:      req.Indoor,
		Capacity:    req.Capacity,
		HourlyPrice: req.HourlyPrice,
		Active:      true,
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin court create")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.courts.Create(ctx, tx, &court); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create court")
		return nil, err
	}
	if err = s.courts.ReplaceSchedules(ctx, tx, court.ID, schedules); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store court schedules")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit court create")
		return nil, err
	}

	s.logger.Info("court created", zap.String("court_id", court.ID), zap.String("name", court.Name))
	return s.detail(ctx, court.ID)
}

// Update partially updates a court. A non-nil schedule set replaces the
// existing weekly schedule wholesale.
func (s *CourtService) Update(ctx context.Context, courtID string, req dto.UpdateCourtRequest) (*models.CourtDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid court request")
	}
	court, err := s.courts.FindByID(ctx, courtID)
	if err != nil {
		return nil, mapLookupError(err, "court not found")
	}

	if req.Name != nil {
		court.Name = *req.Name
	}
	if req.Sports != nil {
		sports, err := parseSports(req.Sports)
		if err != nil {
			return nil, err
		}
		court.Sports = sports
	}
	if req.Indoor != nil {
		court.Indoor = *req.Indoor
	}
	if req.Capacity != nil {
		court.Capacity = *req.Capacity
	}
	if req.HourlyPrice != nil {
		court.HourlyPrice = *req.HourlyPrice
	}
	if req.Active != nil {
		court.Active = *req.Active
	}

	var schedules []models.CourtSchedule
	if req.Schedules != nil {
		schedules, err = s.buildSchedules(req.Schedules)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin court update")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.courts.Update(ctx, tx, court); err != nil {
		err = mapLookupError(err, "court not found")
		return nil, err
	}
	if req.Schedules != nil {
		if err = s.courts.ReplaceSchedules(ctx, tx, courtID, schedules); err != nil {
			err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store court schedules")
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit court update")
		return nil, err
	}

	if cacheErr := s.cache.Invalidate(ctx, "slots:*"); cacheErr != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(cacheErr))
	}
	s.logger.Info("court updated", zap.String("court_id", courtID))
	return s.detail(ctx, courtID)
}

// Delete removes a court. Courts still hosting practices cannot be removed.
func (s *CourtService) Delete(ctx context.Context, courtID string) error {
	count, err := s.courts.CountPractices(ctx, courtID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count court practices")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "court still hosts practices")
	}
	if err := s.courts.Delete(ctx, nil, courtID); err != nil {
		return mapLookupError(err, "court not found")
	}
	if cacheErr := s.cache.Invalidate(ctx, "slots:*"); cacheErr != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(cacheErr))
	}
	s.logger.Info("court deleted", zap.String("court_id", courtID))
	return nil
}

// Get loads one court with its weekly schedule.
func (s *CourtService) Get(ctx context.Context, courtID string) (*models.CourtDetail, error) {
	return s.detail(ctx, courtID)
}

// List returns every court with its weekly schedule.
func (s *CourtService) List(ctx context.Context) ([]models.CourtDetail, error) {
	courts, err := s.courts.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list courts")
	}
	details := make([]models.CourtDetail, 0, len(courts))
	for _, court := range courts {
		schedules, err := s.courts.ListSchedules(ctx, court.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list court schedules")
		}
		details = append(details, models.CourtDetail{Court: court, Schedules: schedules})
	}
	return details, nil
}

func (s *CourtService) detail(ctx context.Context, courtID string) (*models.CourtDetail, error) {
	court, err := s.courts.FindByID(ctx, courtID)
	if err != nil {
		return nil, mapLookupError(err, "court not found")
	}
	schedules, err := s.courts.ListSchedules(ctx, courtID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list court schedules")
	}
	return &models.CourtDetail{Court: *court, Schedules: schedules}, nil
}
