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

// RentalRepository manages slot rentals.
type RentalRepository struct {
	db *sqlx.DB
}

// NewRentalRepository builds the repository.
func NewRentalRepository(db *sqlx.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

func (r *RentalRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts a RESERVED rental for one slot.
func (r *RentalRepository) Create(ctx context.Context, exec sqlx.ExtContext, rental *models.Rental) error {
	if rental.ID == "" {
		rental.ID = uuid.NewString()
	}
	if rental.ReservedAt.IsZero() {
		rental.ReservedAt = time.Now().UTC()
	}
	if rental.State == "" {
		rental.State = models.RentalReserved
	}
	const query = `
INSERT INTO rentals (id, member_id, slot_id, reserved_at, state, cancel_reason, cancelled_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.exec(exec).ExecContext(ctx, query,
		rental.ID, rental.MemberID, rental.SlotID, rental.ReservedAt, rental.State, rental.CancelReason, rental.CancelledAt); err != nil {
		return fmt.Errorf("create rental: %w", err)
	}
	return nil
}

// FindByID loads a rental.
func (r *RentalRepository) FindByID(ctx context.Context, id string) (*models.Rental, error) {
	const query = `SELECT id, member_id, slot_id, reserved_at, state, cancel_reason, cancelled_at FROM rentals WHERE id = $1`
	var rental models.Rental
	if err := r.db.GetContext(ctx, &rental, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find rental %s: %w", id, err)
	}
	return &rental, nil
}

// MarkCancelled records a cancellation.
func (r *RentalRepository) MarkCancelled(ctx context.Context, exec sqlx.ExtContext, id string, reason *string, cancelledAt time.Time) error {
	const query = `UPDATE rentals SET state = $1, cancel_reason = $2, cancelled_at = $3 WHERE id = $4`
	res, err := r.exec(exec).ExecContext(ctx, query, models.RentalCancelled, reason, cancelledAt, id)
	if err != nil {
		return fmt.Errorf("cancel rental %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel rental %s rows affected: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns rental detail rows, newest reservations first.
func (r *RentalRepository) List(ctx context.Context, query models.RentalFilter) ([]models.RentalDetail, error) {
	base := `
SELECT r.id, r.member_id, r.slot_id, r.reserved_at, r.state, r.cancel_reason, r.cancelled_at,
       s.court_id, c.name AS court_name, s.date AS slot_date, s.start_time AS slot_start_time, s.end_time AS slot_end_time,
       m.first_name || ' ' || m.last_name AS member_name
FROM rentals r
JOIN slots s ON s.id = r.slot_id
JOIN courts c ON c.id = s.court_id
JOIN members m ON m.id = r.member_id`
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if query.MemberID != "" {
		args = append(args, query.MemberID)
		conditions = append(conditions, fmt.Sprintf("r.member_id = $%d", len(args)))
	}
	if query.State != "" {
		args = append(args, query.State)
		conditions = append(conditions, fmt.Sprintf("r.state = $%d", len(args)))
	}
	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}
	base += " ORDER BY r.reserved_at DESC"

	var rentals []models.RentalDetail
	if err := r.db.SelectContext(ctx, &rentals, base, args...); err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return rentals, nil
}

// ListElapsedReserved returns RESERVED rentals whose slot lies strictly in
// the past, candidates for completion by the sweep job.
func (r *RentalRepository) ListElapsedReserved(ctx context.Context, today time.Time, nowClock string) ([]models.Rental, error) {
	const query = `
SELECT r.id, r.member_id, r.slot_id, r.reserved_at, r.state, r.cancel_reason, r.cancelled_at
FROM rentals r
JOIN slots s ON s.id = r.slot_id
WHERE r.state = $1 AND (s.date < $2 OR (s.date = $2 AND s.end_time <= $3))`
	var rentals []models.Rental
	if err := r.db.SelectContext(ctx, &rentals, query, models.RentalReserved, today, nowClock); err != nil {
		return nil, fmt.Errorf("list elapsed rentals: %w", err)
	}
	return rentals, nil
}

// MarkCompleted transitions a RESERVED rental to COMPLETED.
func (r *RentalRepository) MarkCompleted(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	const query = `UPDATE rentals SET state = $1 WHERE id = $2 AND state = $3`
	res, err := r.exec(exec).ExecContext(ctx, query, models.RentalCompleted, id, models.RentalReserved)
	if err != nil {
		return false, fmt.Errorf("complete rental %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete rental %s rows affected: %w", id, err)
	}
	return affected == 1, nil
}
