package models

import (
	"time"

	"github.com/lib/pq"
)

// Court represents a bookable physical facility.
type Court struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Sports      pq.StringArray `db:"sports" json:"sports"`
	Indoor      bool           `db:"indoor" json:"indoor"`
	Capacity    int            `db:"capacity" json:"capacity"`
	HourlyPrice float64        `db:"hourly_price" json:"hourly_price"`
	Active      bool           `db:"active" json:"active"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// CourtSchedule is a recurring weekly open-hours window for a court.
// Schedule sets are replaced wholesale on court edits.
type CourtSchedule struct {
	ID        string    `db:"id" json:"id"`
	CourtID   string    `db:"court_id" json:"court_id"`
	DayOfWeek DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Available bool      `db:"available" json:"available"`
}

// CourtDetail bundles a court with its weekly schedule and the practices it
// hosts, as consumed by the slot generator.
type CourtDetail struct {
	Court
	Schedules []CourtSchedule  `json:"schedules"`
	Practices []PracticeDetail `json:"practices,omitempty"`
}
