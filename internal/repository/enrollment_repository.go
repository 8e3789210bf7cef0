package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clubsanmartin/club-api/internal/models"
)

// EnrollmentRepository manages practice enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository builds the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	const query = `
INSERT INTO enrollments (id, member_id, practice_id, enrolled_at, price_paid)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query,
		enrollment.ID, enrollment.MemberID, enrollment.PracticeID, enrollment.EnrolledAt, enrollment.PricePaid); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Exists reports whether the member is already enrolled in the practice.
func (r *EnrollmentRepository) Exists(ctx context.Context, memberID, practiceID string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM enrollments WHERE member_id = $1 AND practice_id = $2`, memberID, practiceID); err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return count > 0, nil
}

// ListByPractice returns the enrollments of a practice.
func (r *EnrollmentRepository) ListByPractice(ctx context.Context, practiceID string) ([]models.Enrollment, error) {
	const query = `SELECT id, member_id, practice_id, enrolled_at, price_paid FROM enrollments WHERE practice_id = $1 ORDER BY enrolled_at ASC`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, practiceID); err != nil {
		return nil, fmt.Errorf("list enrollments for practice %s: %w", practiceID, err)
	}
	return enrollments, nil
}

// ListByMember returns the enrollments of a member.
func (r *EnrollmentRepository) ListByMember(ctx context.Context, memberID string) ([]models.Enrollment, error) {
	const query = `SELECT id, member_id, practice_id, enrolled_at, price_paid FROM enrollments WHERE member_id = $1 ORDER BY enrolled_at ASC`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, memberID); err != nil {
		return nil, fmt.Errorf("list enrollments for member %s: %w", memberID, err)
	}
	return enrollments, nil
}
