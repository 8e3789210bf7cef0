package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type enrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, memberID, practiceID string) (bool, error)
	ListByPractice(ctx context.Context, practiceID string) ([]models.Enrollment, error)
	ListByMember(ctx context.Context, memberID string) ([]models.Enrollment, error)
}

type enrollmentPracticeReader interface {
	FindByID(ctx context.Context, id string) (*models.Practice, error)
}

// EnrollmentService signs members up for practices, applying the family
// discount where one applies.
type EnrollmentService struct {
	enrollments enrollmentStore
	members     rentalMemberReader
	practices   enrollmentPracticeReader
	families    memberFamilyReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEnrollmentService wires enrollment dependencies.
func NewEnrollmentService(
	enrollments enrollmentStore,
	members rentalMemberReader,
	practices enrollmentPracticeReader,
	families memberFamilyReader,
	validate *validator.Validate,
	logger *zap.Logger,
) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		enrollments: enrollments,
		members:     members,
		practices:   practices,
		families:    families,
		validator:   validate,
		logger:      logger,
	}
}

// Enroll signs a member up for a practice. The paid price is the practice
// price, reduced by the member's family discount when they belong to one.
func (s *EnrollmentService) Enroll(ctx context.Context, req dto.EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment request")
	}
	member, err := s.members.FindByID(ctx, req.MemberID)
	if err != nil {
		return nil, mapLookupError(err, "member not found")
	}
	if member.Status != models.MemberActive {
		return nil, appErrors.Clone(appErrors.ErrConflict, "member is not active")
	}
	practice, err := s.practices.FindByID(ctx, req.PracticeID)
	if err != nil {
		return nil, mapLookupError(err, "practice not found")
	}

	exists, err := s.enrollments.Exists(ctx, req.MemberID, req.PracticeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "member is already enrolled in this practice")
	}

	price := practice.Price
	if member.FamilyID != nil {
		family, err := s.families.FindByID(ctx, *member.FamilyID)
		if err != nil {
			return nil, mapLookupError(err, "family not found")
		}
		price = price * (1 - family.Discount)
	}

	enrollment := models.Enrollment{
		MemberID:   req.MemberID,
		PracticeID: req.PracticeID,
		PricePaid:  price,
	}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create enrollment")
	}
	s.logger.Info("member enrolled",
		zap.String("member_id", req.MemberID),
		zap.String("practice_id", req.PracticeID),
		zap.Float64("price_paid", price),
	)
	return &enrollment, nil
}

// ListByPractice returns every enrollment of a practice.
func (s *EnrollmentService) ListByPractice(ctx context.Context, practiceID string) ([]models.Enrollment, error) {
	enrollments, err := s.enrollments.ListByPractice(ctx, practiceID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list enrollments")
	}
	return enrollments, nil
}

// ListByMember returns every enrollment of a member.
func (s *EnrollmentService) ListByMember(ctx context.Context, memberID string) ([]models.Enrollment, error) {
	enrollments, err := s.enrollments.ListByMember(ctx, memberID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list enrollments")
	}
	return enrollments, nil
}
