package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type memberStore interface {
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id string) (*models.Member, error)
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, *models.Pagination, error)
}

type memberFamilyReader interface {
	FindByID(ctx context.Context, id string) (*models.Family, error)
}

// MemberService manages club member accounts.
type MemberService struct {
	members   memberStore
	families  memberFamilyReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMemberService wires member dependencies.
func NewMemberService(members memberStore, families memberFamilyReader, validate *validator.Validate, logger *zap.Logger) *MemberService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{members: members, families: families, validator: validate, logger: logger}
}

func (s *MemberService) requireFamily(ctx context.Context, familyID string) error {
	if _, err := s.families.FindByID(ctx, familyID); err != nil {
		return mapLookupError(err, "family not found")
	}
	return nil
}

// Create registers a new member. Family members must reference an existing
// family.
func (s *MemberService) Create(ctx context.Context, req dto.CreateMemberRequest) (*models.Member, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid member request")
	}
	planType := models.PlanType(req.PlanType)
	if planType == models.PlanFamily && req.FamilyID == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "family plan members must reference a family")
	}
	if req.FamilyID != nil {
		if err := s.requireFamily(ctx, *req.FamilyID); err != nil {
			return nil, err
		}
	}

	member := models.Member{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Email:     req.Email,
		Phone:     req.Phone,
		PlanType:  planType,
		Status:    models.MemberActive,
		FamilyID:  req.FamilyID,
	}
	if err := s.members.Create(ctx, &member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create member")
	}
	s.logger.Info("member created", zap.String("member_id", member.ID))
	return &member, nil
}

// Update partially updates a member.
func (s *MemberService) Update(ctx context.Context, memberID string, req dto.UpdateMemberRequest) (*models.Member, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid member request")
	}
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, mapLookupError(err, "member not found")
	}

	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.PlanType != nil {
		member.PlanType = models.PlanType(*req.PlanType)
	}
	if req.Status != nil {
		member.Status = models.MemberStatus(*req.Status)
	}
	if req.FamilyID != nil {
		if *req.FamilyID == "" {
			member.FamilyID = nil
		} else {
			if err := s.requireFamily(ctx, *req.FamilyID); err != nil {
				return nil, err
			}
			member.FamilyID = req.FamilyID
		}
	}

	if err := s.members.Update(ctx, member); err != nil {
		return nil, mapLookupError(err, "member not found")
	}
	s.logger.Info("member updated", zap.String("member_id", memberID))
	return member, nil
}

// Get loads one member.
func (s *MemberService) Get(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, mapLookupError(err, "member not found")
	}
	return member, nil
}

// List returns members matching the filter with pagination metadata.
func (s *MemberService) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, *models.Pagination, error) {
	members, pagination, err := s.members.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list members")
	}
	return members, pagination, nil
}
