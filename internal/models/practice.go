package models

import "time"

// Practice is a recurring trainer-led activity hosted on a court over a date
// range.
type Practice struct {
	ID        string    `db:"id" json:"id"`
	Sport     Sport     `db:"sport" json:"sport"`
	CourtID   string    `db:"court_id" json:"court_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PracticeSchedule is one weekly occurrence of a practice.
type PracticeSchedule struct {
	ID         string    `db:"id" json:"id"`
	PracticeID string    `db:"practice_id" json:"practice_id"`
	DayOfWeek  DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
}

// PracticeDetail carries a practice with its schedule entries and trainer ids.
type PracticeDetail struct {
	Practice
	Schedules  []PracticeSchedule `json:"schedules"`
	TrainerIDs []string           `json:"trainer_ids"`
}
