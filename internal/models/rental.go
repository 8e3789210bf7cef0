package models

import "time"

// Rental is a member's reservation of exactly one slot. A multi-slot booking
// produces one rental row per slot.
type Rental struct {
	ID           string      `db:"id" json:"id"`
	MemberID     string      `db:"member_id" json:"member_id"`
	SlotID       string      `db:"slot_id" json:"slot_id"`
	ReservedAt   time.Time   `db:"reserved_at" json:"reserved_at"`
	State        RentalState `db:"state" json:"state"`
	CancelReason *string     `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time  `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

// RentalFilter narrows rental listings.
type RentalFilter struct {
	MemberID string
	State    RentalState
}

// RentalDetail joins a rental with its slot and court for listings.
type RentalDetail struct {
	Rental
	CourtID       string    `db:"court_id" json:"court_id"`
	CourtName     string    `db:"court_name" json:"court_name"`
	SlotDate      time.Time `db:"slot_date" json:"slot_date"`
	SlotStartTime string    `db:"slot_start_time" json:"slot_start_time"`
	SlotEndTime   string    `db:"slot_end_time" json:"slot_end_time"`
	MemberName    string    `db:"member_name" json:"member_name"`
}
