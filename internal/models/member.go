package models

import "time"

// Member represents a club member (socio).
type Member struct {
	ID        string       `db:"id" json:"id"`
	FirstName string       `db:"first_name" json:"first_name"`
	LastName  string       `db:"last_name" json:"last_name"`
	DNI       string       `db:"dni" json:"dni"`
	Email     string       `db:"email" json:"email"`
	Phone     *string      `db:"phone" json:"phone,omitempty"`
	PlanType  PlanType     `db:"plan_type" json:"plan_type"`
	Status    MemberStatus `db:"status" json:"status"`
	FamilyID  *string      `db:"family_id" json:"family_id,omitempty"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// MemberFilter captures filtering options for listing members.
type MemberFilter struct {
	Search   string
	PlanType PlanType
	Status   MemberStatus
	FamilyID string
	Page     int
	PageSize int
}

// Pagination describes listing metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
