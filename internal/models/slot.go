package models

import "time"

// Slot is one concrete half-hour bookable unit of a court on a date.
// At most one slot exists per (court, date, start time).
type Slot struct {
	ID         string    `db:"id" json:"id"`
	CourtID    string    `db:"court_id" json:"court_id"`
	Date       time.Time `db:"date" json:"date"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	State      SlotState `db:"state" json:"state"`
	PracticeID *string   `db:"practice_id" json:"practice_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// SlotFilter narrows slot queries.
type SlotFilter struct {
	CourtID    string
	Date       *time.Time
	StartTimes []string
	State      SlotState
	PracticeID string
	DateFrom   *time.Time
	DateTo     *time.Time
}
