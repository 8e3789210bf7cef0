package models

import "time"

// Enrollment records a member signed up for a sports practice.
type Enrollment struct {
	ID         string    `db:"id" json:"id"`
	MemberID   string    `db:"member_id" json:"member_id"`
	PracticeID string    `db:"practice_id" json:"practice_id"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
	PricePaid  float64   `db:"price_paid" json:"price_paid"`
}
