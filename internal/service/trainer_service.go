package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type trainerStore interface {
	Create(ctx context.Context, trainer *models.Trainer) error
	FindByID(ctx context.Context, id string) (*models.Trainer, error)
	List(ctx context.Context) ([]models.Trainer, error)
}

// TrainerService manages the trainer roster.
type TrainerService struct {
	trainers  trainerStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainerService wires trainer dependencies.
func NewTrainerService(trainers trainerStore, validate *validator.Validate, logger *zap.Logger) *TrainerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainerService{trainers: trainers, validator: validate, logger: logger}
}

// Create registers a trainer.
func (s *TrainerService) Create(ctx context.Context, req dto.CreateTrainerRequest) (*models.Trainer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trainer request")
	}
	sport, err := models.ParseSport(req.Sport)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	trainer := models.Trainer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Email:     req.Email,
		Phone:     req.Phone,
		Sport:     sport,
		Active:    true,
	}
	if err := s.trainers.Create(ctx, &trainer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create trainer")
	}
	s.logger.Info("trainer created", zap.String("trainer_id", trainer.ID))
	return &trainer, nil
}

// Get loads one trainer.
func (s *TrainerService) Get(ctx context.Context, trainerID string) (*models.Trainer, error) {
	trainer, err := s.trainers.FindByID(ctx, trainerID)
	if err != nil {
		return nil, mapLookupError(err, "trainer not found")
	}
	return trainer, nil
}

// List returns every trainer.
func (s *TrainerService) List(ctx context.Context) ([]models.Trainer, error) {
	trainers, err := s.trainers.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list trainers")
	}
	return trainers, nil
}
