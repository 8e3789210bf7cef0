package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clubsanmartin/club-api/internal/models"
)

// SlotRepository manages dated half-hour court slots.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository builds the repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// BulkInsert inserts generated slots, silently skipping rows that collide on
// the (court, date, start time) uniqueness key. It returns the number of rows
// actually inserted.
func (r *SlotRepository) BulkInsert(ctx context.Context, exec sqlx.ExtContext, slots []models.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	var sb strings.Builder
	sb.WriteString("INSERT INTO slots (id, court_id, date, start_time, end_time, state, practice_id, created_at) VALUES ")
	args := make([]interface{}, 0, len(slots)*8)
	for i := range slots {
		slot := &slots[i]
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 8
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, slot.ID, slot.CourtID, slot.Date, slot.StartTime, slot.EndTime, slot.State, slot.PracticeID, slot.CreatedAt)
	}
	sb.WriteString(" ON CONFLICT (court_id, date, start_time) DO NOTHING")

	res, err := target.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("bulk insert slots: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk insert slots rows affected: %w", err)
	}
	return int(inserted), nil
}

// List returns slots matching the filter ordered by date and start time.
func (r *SlotRepository) List(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error) {
	query := "SELECT id, court_id, date, start_time, end_time, state, practice_id, created_at FROM slots"
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if filter.CourtID != "" {
		args = append(args, filter.CourtID)
		conditions = append(conditions, fmt.Sprintf("court_id = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		conditions = append(conditions, fmt.Sprintf("state = $%d", len(args)))
	}
	if filter.PracticeID != "" {
		args = append(args, filter.PracticeID)
		conditions = append(conditions, fmt.Sprintf("practice_id = $%d", len(args)))
	}
	if len(filter.StartTimes) > 0 {
		placeholders := make([]string, 0, len(filter.StartTimes))
		for _, start := range filter.StartTimes {
			args = append(args, start)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, "start_time IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, start_time ASC"

	var slots []models.Slot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// FindForRental loads the persisted slots matching the requested start times
// on a court and date.
func (r *SlotRepository) FindForRental(ctx context.Context, courtID string, date time.Time, startTimes []string) ([]models.Slot, error) {
	return r.List(ctx, models.SlotFilter{CourtID: courtID, Date: &date, StartTimes: startTimes})
}

// ClaimForRental flips one slot from FREE to RENTED. The conditional update
// is the concurrency guard: a false return means another writer got there
// first (or the slot was never free).
func (r *SlotRepository) ClaimForRental(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error) {
	const query = `UPDATE slots SET state = $1 WHERE id = $2 AND state = $3`
	res, err := r.exec(exec).ExecContext(ctx, query, models.SlotRented, slotID, models.SlotFree)
	if err != nil {
		return false, fmt.Errorf("claim slot %s: %w", slotID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim slot %s rows affected: %w", slotID, err)
	}
	return affected == 1, nil
}

// ReleaseRented flips one slot from RENTED back to FREE.
func (r *SlotRepository) ReleaseRented(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error) {
	const query = `UPDATE slots SET state = $1 WHERE id = $2 AND state = $3`
	res, err := r.exec(exec).ExecContext(ctx, query, models.SlotFree, slotID, models.SlotRented)
	if err != nil {
		return false, fmt.Errorf("release slot %s: %w", slotID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("release slot %s rows affected: %w", slotID, err)
	}
	return affected == 1, nil
}

// ReleasePracticeWindow frees the PRACTICE slots a practice claimed on one
// date inside one schedule window. Matching is deliberately narrow: court,
// date, owning practice and start time within [startTime, endTime) so that
// other practices' slots on the same court and day stay untouched.
func (r *SlotRepository) ReleasePracticeWindow(ctx context.Context, exec sqlx.ExtContext, courtID string, date time.Time, practiceID, startTime, endTime string) (int, error) {
	const query = `
UPDATE slots SET state = $1, practice_id = NULL
WHERE court_id = $2 AND date = $3 AND practice_id = $4 AND state = $5
  AND start_time >= $6 AND start_time < $7`
	res, err := r.exec(exec).ExecContext(ctx, query, models.SlotFree, courtID, date, practiceID, models.SlotPractice, startTime, endTime)
	if err != nil {
		return 0, fmt.Errorf("release practice window: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("release practice window rows affected: %w", err)
	}
	return int(affected), nil
}

// FindByID loads a single slot.
func (r *SlotRepository) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	const query = `SELECT id, court_id, date, start_time, end_time, state, practice_id, created_at FROM slots WHERE id = $1`
	var slot models.Slot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find slot %s: %w", id, err)
	}
	return &slot, nil
}
