package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clubsanmartin/club-api/internal/models"
)

// PracticeRepository manages practices, their weekly schedules and trainer
// assignments.
type PracticeRepository struct {
	db *sqlx.DB
}

// NewPracticeRepository builds the repository.
func NewPracticeRepository(db *sqlx.DB) *PracticeRepository {
	return &PracticeRepository{db: db}
}

func (r *PracticeRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a practice row.
func (r *PracticeRepository) Create(ctx context.Context, exec sqlx.ExtContext, practice *models.Practice) error {
	if practice.ID == "" {
		practice.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	practice.CreatedAt = now
	practice.UpdatedAt = now

	const query = `
INSERT INTO practices (id, sport, court_id, start_date, end_date, price, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.exec(exec).ExecContext(ctx, query,
		practice.ID, practice.Sport, practice.CourtID, practice.StartDate, practice.EndDate, practice.Price, practice.CreatedAt, practice.UpdatedAt); err != nil {
		return fmt.Errorf("create practice: %w", err)
	}
	return nil
}

// Update persists practice fields.
func (r *PracticeRepository) Update(ctx context.Context, exec sqlx.ExtContext, practice *models.Practice) error {
	practice.UpdatedAt = time.Now().UTC()
	const query = `
UPDATE practices SET sport = $1, court_id = $2, start_date = $3, end_date = $4, price = $5, updated_at = $6
WHERE id = $7`
	res, err := r.exec(exec).ExecContext(ctx, query,
		practice.Sport, practice.CourtID, practice.StartDate, practice.EndDate, practice.Price, practice.UpdatedAt, practice.ID)
	if err != nil {
		return fmt.Errorf("update practice %s: %w", practice.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update practice %s rows affected: %w", practice.ID, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the practice row itself. Schedules and trainer links must be
// removed first (see ReplaceSchedules/ReplaceTrainers with empty sets).
func (r *PracticeRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	res, err := r.exec(exec).ExecContext(ctx, `DELETE FROM practices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete practice %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete practice %s rows affected: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID loads a practice row.
func (r *PracticeRepository) FindByID(ctx context.Context, id string) (*models.Practice, error) {
	const query = `SELECT id, sport, court_id, start_date, end_date, price, created_at, updated_at FROM practices WHERE id = $1`
	var practice models.Practice
	if err := r.db.GetContext(ctx, &practice, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find practice %s: %w", id, err)
	}
	return &practice, nil
}

// FindDetail loads a practice with schedules and trainer ids.
func (r *PracticeRepository) FindDetail(ctx context.Context, id string) (*models.PracticeDetail, error) {
	practice, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	schedules, err := r.ListSchedules(ctx, id)
	if err != nil {
		return nil, err
	}
	trainerIDs, err := r.ListTrainerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PracticeDetail{Practice: *practice, Schedules: schedules, TrainerIDs: trainerIDs}, nil
}

// List returns every practice row.
func (r *PracticeRepository) List(ctx context.Context) ([]models.Practice, error) {
	const query = `SELECT id, sport, court_id, start_date, end_date, price, created_at, updated_at FROM practices ORDER BY start_date ASC`
	var practices []models.Practice
	if err := r.db.SelectContext(ctx, &practices, query); err != nil {
		return nil, fmt.Errorf("list practices: %w", err)
	}
	return practices, nil
}

// ListByCourt returns the practices hosted on a court with their schedules.
func (r *PracticeRepository) ListByCourt(ctx context.Context, courtID string, excludeID string) ([]models.PracticeDetail, error) {
	query := `SELECT id, sport, court_id, start_date, end_date, price, created_at, updated_at FROM practices WHERE court_id = $1`
	args := []interface{}{courtID}
	if excludeID != "" {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	var practices []models.Practice
	if err := r.db.SelectContext(ctx, &practices, query, args...); err != nil {
		return nil, fmt.Errorf("list practices for court %s: %w", courtID, err)
	}
	return r.attachSchedules(ctx, practices)
}

// ListByTrainer returns all practices a trainer is assigned to, optionally
// excluding one practice id, with nested schedule entries.
func (r *PracticeRepository) ListByTrainer(ctx context.Context, trainerID string, excludeID string) ([]models.PracticeDetail, error) {
	query := `
SELECT p.id, p.sport, p.court_id, p.start_date, p.end_date, p.price, p.created_at, p.updated_at
FROM practices p
JOIN practice_trainers pt ON pt.practice_id = p.id
WHERE pt.trainer_id = $1`
	args := []interface{}{trainerID}
	if excludeID != "" {
		query += ` AND p.id <> $2`
		args = append(args, excludeID)
	}
	var practices []models.Practice
	if err := r.db.SelectContext(ctx, &practices, query, args...); err != nil {
		return nil, fmt.Errorf("list practices for trainer %s: %w", trainerID, err)
	}
	return r.attachSchedules(ctx, practices)
}

func (r *PracticeRepository) attachSchedules(ctx context.Context, practices []models.Practice) ([]models.PracticeDetail, error) {
	details := make([]models.PracticeDetail, 0, len(practices))
	for _, practice := range practices {
		schedules, err := r.ListSchedules(ctx, practice.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.PracticeDetail{Practice: practice, Schedules: schedules})
	}
	return details, nil
}

// ListSchedules returns the weekly occurrences of a practice.
func (r *PracticeRepository) ListSchedules(ctx context.Context, practiceID string) ([]models.PracticeSchedule, error) {
	const query = `SELECT id, practice_id, day_of_week, start_time, end_time FROM practice_schedules WHERE practice_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var schedules []models.PracticeSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, practiceID); err != nil {
		return nil, fmt.Errorf("list practice schedules for %s: %w", practiceID, err)
	}
	return schedules, nil
}

// ReplaceSchedules swaps a practice's schedule entries wholesale.
func (r *PracticeRepository) ReplaceSchedules(ctx context.Context, exec sqlx.ExtContext, practiceID string, schedules []models.PracticeSchedule) error {
	target := r.exec(exec)
	if _, err := target.ExecContext(ctx, `DELETE FROM practice_schedules WHERE practice_id = $1`, practiceID); err != nil {
		return fmt.Errorf("delete practice schedules for %s: %w", practiceID, err)
	}
	const query = `
INSERT INTO practice_schedules (id, practice_id, day_of_week, start_time, end_time)
VALUES ($1, $2, $3, $4, $5)`
	for i := range schedules {
		entry := &schedules[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		entry.PracticeID = practiceID
		if _, err := target.ExecContext(ctx, query, entry.ID, entry.PracticeID, entry.DayOfWeek, entry.StartTime, entry.EndTime); err != nil {
			return fmt.Errorf("insert practice schedule: %w", err)
		}
	}
	return nil
}

// ReplaceTrainers swaps a practice's trainer set wholesale. An empty set
// detaches every trainer.
func (r *PracticeRepository) ReplaceTrainers(ctx context.Context, exec sqlx.ExtContext, practiceID string, trainerIDs []string) error {
	target := r.exec(exec)
	if _, err := target.ExecContext(ctx, `DELETE FROM practice_trainers WHERE practice_id = $1`, practiceID); err != nil {
		return fmt.Errorf("detach trainers for practice %s: %w", practiceID, err)
	}
	const query = `INSERT INTO practice_trainers (practice_id, trainer_id) VALUES ($1, $2)`
	for _, trainerID := range trainerIDs {
		if _, err := target.ExecContext(ctx, query, practiceID, trainerID); err != nil {
			return fmt.Errorf("attach trainer %s to practice %s: %w", trainerID, practiceID, err)
		}
	}
	return nil
}

// ListTrainerIDs returns the trainers assigned to a practice.
func (r *PracticeRepository) ListTrainerIDs(ctx context.Context, practiceID string) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT trainer_id FROM practice_trainers WHERE practice_id = $1 ORDER BY trainer_id ASC`, practiceID); err != nil {
		return nil, fmt.Errorf("list trainers for practice %s: %w", practiceID, err)
	}
	return ids, nil
}
