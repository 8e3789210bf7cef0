package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type enrollmentStoreStub struct {
	created *models.Enrollment
	exists  bool
}

func (s *enrollmentStoreStub) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	s.created = enrollment
	return nil
}

func (s *enrollmentStoreStub) Exists(ctx context.Context, memberID, practiceID string) (bool, error) {
	return s.exists, nil
}

func (s *enrollmentStoreStub) ListByPractice(ctx context.Context, practiceID string) ([]models.Enrollment, error) {
	return nil, nil
}

func (s *enrollmentStoreStub) ListByMember(ctx context.Context, memberID string) ([]models.Enrollment, error) {
	return nil, nil
}

type practiceReaderStub struct {
	practice *models.Practice
}

func (s *practiceReaderStub) FindByID(ctx context.Context, id string) (*models.Practice, error) {
	if s.practice == nil {
		return nil, sql.ErrNoRows
	}
	return s.practice, nil
}

type familyReaderStub struct {
	family *models.Family
}

func (s *familyReaderStub) FindByID(ctx context.Context, id string) (*models.Family, error) {
	if s.family == nil {
		return nil, sql.ErrNoRows
	}
	return s.family, nil
}

func TestEnrollmentServiceAppliesFamilyDiscount(t *testing.T) {
	familyID := "family-1"
	members := &memberReaderStub{member: &models.Member{
		ID:       "member-1",
		Status:   models.MemberActive,
		PlanType: models.PlanFamily,
		FamilyID: &familyID,
	}}
	practices := &practiceReaderStub{practice: &models.Practice{ID: "practice-1", Price: 1000}}
	families := &familyReaderStub{family: &models.Family{ID: familyID, Discount: 0.2}}
	store := &enrollmentStoreStub{}
	svc := NewEnrollmentService(store, members, practices, families, nil, nil)

	enrollment, err := svc.Enroll(context.Background(), dto.EnrollRequest{MemberID: "member-1", PracticeID: "practice-1"})
	require.NoError(t, err)
	assert.InDelta(t, 800, enrollment.PricePaid, 0.001)
}

func TestEnrollmentServiceFullPriceWithoutFamily(t *testing.T) {
	members := &memberReaderStub{member: &models.Member{ID: "member-1", Status: models.MemberActive}}
	practices := &practiceReaderStub{practice: &models.Practice{ID: "practice-1", Price: 1000}}
	svc := NewEnrollmentService(&enrollmentStoreStub{}, members, practices, &familyReaderStub{}, nil, nil)

	enrollment, err := svc.Enroll(context.Background(), dto.EnrollRequest{MemberID: "member-1", PracticeID: "practice-1"})
	require.NoError(t, err)
	assert.InDelta(t, 1000, enrollment.PricePaid, 0.001)
}

func TestEnrollmentServiceRejectsDuplicate(t *testing.T) {
	members := &memberReaderStub{member: &models.Member{ID: "member-1", Status: models.MemberActive}}
	practices := &practiceReaderStub{practice: &models.Practice{ID: "practice-1", Price: 1000}}
	svc := NewEnrollmentService(&enrollmentStoreStub{exists: true}, members, practices, &familyReaderStub{}, nil, nil)

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{MemberID: "member-1", PracticeID: "practice-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceRejectsInactiveMember(t *testing.T) {
	members := &memberReaderStub{member: &models.Member{ID: "member-1", Status: models.MemberInactive}}
	practices := &practiceReaderStub{practice: &models.Practice{ID: "practice-1"}}
	svc := NewEnrollmentService(&enrollmentStoreStub{}, members, practices, &familyReaderStub{}, nil, nil)

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{MemberID: "member-1", PracticeID: "practice-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServicePracticeNotFound(t *testing.T) {
	members := &memberReaderStub{member: &models.Member{ID: "member-1", Status: models.MemberActive}}
	svc := NewEnrollmentService(&enrollmentStoreStub{}, members, &practiceReaderStub{}, &familyReaderStub{}, nil, nil)

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{MemberID: "member-1", PracticeID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
