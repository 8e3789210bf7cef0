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

// CourtRepository manages courts and their weekly schedules.
type CourtRepository struct {
	db *sqlx.DB
}

// NewCourtRepository builds the repository.
func NewCourtRepository(db *sqlx.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

func (r *CourtRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a court.
func (r *CourtRepository) Create(ctx context.Context, exec sqlx.ExtContext, court *models.Court) error {
	if court.ID == "" {
		court.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	court.CreatedAt = now
	court.UpdatedAt = now

	const query = `
INSERT INTO courts (id, name, sports, indoor, capacity, hourly_price, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.exec(exec).ExecContext(ctx, query,
		court.ID, court.Name, court.Sports, court.Indoor, court.Capacity, court.HourlyPrice, court.Active, court.CreatedAt, court.UpdatedAt); err != nil {
		return fmt.Errorf("create court: %w", err)
	}
	return nil
}

// Update persists court fields.
func (r *CourtRepository) Update(ctx context.Context, exec sqlx.ExtContext, court *models.Court) error {
	court.UpdatedAt = time.Now().UTC()
	const query = `
UPDATE courts SET name = $1, sports = $2, indoor = $3, capacity = $4, hourly_price = $5, active = $6, updated_at = $7
WHERE id = $8`
	res, err := r.exec(exec).ExecContext(ctx, query,
		court.Name, court.Sports, court.Indoor, court.Capacity, court.HourlyPrice, court.Active, court.UpdatedAt, court.ID)
	if err != nil {
		return fmt.Errorf("update court %s: %w", court.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update court %s rows affected: %w", court.ID, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a court; slots cascade at the schema level.
func (r *CourtRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	res, err := r.exec(exec).ExecContext(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete court %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete court %s rows affected: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID loads a single court.
func (r *CourtRepository) FindByID(ctx context.Context, id string) (*models.Court, error) {
	const query = `SELECT id, name, sports, indoor, capacity, hourly_price, active, created_at, updated_at FROM courts WHERE id = $1`
	var court models.Court
	if err := r.db.GetContext(ctx, &court, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find court %s: %w", id, err)
	}
	return &court, nil
}

// List returns every court ordered by name.
func (r *CourtRepository) List(ctx context.Context) ([]models.Court, error) {
	const query = `SELECT id, name, sports, indoor, capacity, hourly_price, active, created_at, updated_at FROM courts ORDER BY name ASC`
	var courts []models.Court
	if err := r.db.SelectContext(ctx, &courts, query); err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	return courts, nil
}

// ReplaceSchedules swaps a court's weekly schedule wholesale: delete all,
// insert new.
func (r *CourtRepository) ReplaceSchedules(ctx context.Context, exec sqlx.ExtContext, courtID string, schedules []models.CourtSchedule) error {
	target := r.exec(exec)
	if _, err := target.ExecContext(ctx, `DELETE FROM court_schedules WHERE court_id = $1`, courtID); err != nil {
		return fmt.Errorf("delete court schedules for %s: %w", courtID, err)
	}
	const query = `
INSERT INTO court_schedules (id, court_id, day_of_week, start_time, end_time, available)
VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range schedules {
		entry := &schedules[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		entry.CourtID = courtID
		if _, err := target.ExecContext(ctx, query, entry.ID, entry.CourtID, entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.Available); err != nil {
			return fmt.Errorf("insert court schedule: %w", err)
		}
	}
	return nil
}

// ListSchedules returns a court's weekly schedule.
func (r *CourtRepository) ListSchedules(ctx context.Context, courtID string) ([]models.CourtSchedule, error) {
	const query = `SELECT id, court_id, day_of_week, start_time, end_time, available FROM court_schedules WHERE court_id = $1 ORDER BY day_of_week ASC, start_time ASC`
	var schedules []models.CourtSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, courtID); err != nil {
		return nil, fmt.Errorf("list court schedules for %s: %w", courtID, err)
	}
	return schedules, nil
}

// ListAllSchedules returns every weekly schedule keyed by court.
func (r *CourtRepository) ListAllSchedules(ctx context.Context) ([]models.CourtSchedule, error) {
	const query = `SELECT id, court_id, day_of_week, start_time, end_time, available FROM court_schedules ORDER BY court_id ASC, day_of_week ASC, start_time ASC`
	var schedules []models.CourtSchedule
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("list court schedules: %w", err)
	}
	return schedules, nil
}

// CountPractices reports how many practices reference the court. Court
// deletion is blocked while this is non-zero.
func (r *CourtRepository) CountPractices(ctx context.Context, courtID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM practices WHERE court_id = $1`, courtID); err != nil {
		return 0, fmt.Errorf("count practices for court %s: %w", courtID, err)
	}
	return count, nil
}
