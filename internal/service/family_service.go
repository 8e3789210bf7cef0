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

type familyStore interface {
	Create(ctx context.Context, family *models.Family) error
	FindByID(ctx context.Context, id string) (*models.Family, error)
	List(ctx context.Context) ([]models.Family, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
}

type familyMemberDetacher interface {
	DetachFamily(ctx context.Context, exec sqlx.ExtContext, familyID string) error
}

// FamilyService manages family plans and their discount.
type FamilyService struct {
	families  familyStore
	members   familyMemberDetacher
	tx        txProvider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFamilyService wires family dependencies.
func NewFamilyService(families familyStore, members familyMemberDetacher, tx txProvider, validate *validator.Validate, logger *zap.Logger) *FamilyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FamilyService{families: families, members: members, tx: tx, validator: validate, logger: logger}
}

// Create opens a new family plan.
func (s *FamilyService) Create(ctx context.Context, req dto.CreateFamilyRequest) (*models.Family, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid family request")
	}
	family := models.Family{LastName: req.LastName, Discount: req.Discount}
	if err := s.families.Create(ctx, &family); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create family")
	}
	s.logger.Info("family created", zap.String("family_id", family.ID))
	return &family, nil
}

// Get loads one family.
func (s *FamilyService) Get(ctx context.Context, familyID string) (*models.Family, error) {
	family, err := s.families.FindByID(ctx, familyID)
	if err != nil {
		return nil, mapLookupError(err, "family not found")
	}
	return family, nil
}

// List returns every family.
func (s *FamilyService) List(ctx context.Context) ([]models.Family, error) {
	families, err := s.families.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list families")
	}
	return families, nil
}

// Delete dissolves a family plan, detaching its members first so their
// accounts survive as individual plans.
func (s *FamilyService) Delete(ctx context.Context, familyID string) error {
	if _, err := s.families.FindByID(ctx, familyID); err != nil {
		return mapLookupError(err, "family not found")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin family delete")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.members.DetachFamily(ctx, tx, familyID); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "detach family members")
		return err
	}
	if err = s.families.Delete(ctx, tx, familyID); err != nil {
		err = mapLookupError(err, "family not found")
		return err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit family delete")
		return err
	}

	s.logger.Info("family deleted", zap.String("family_id", familyID))
	return nil
}
