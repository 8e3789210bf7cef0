package dto

// RentalSlotRequest identifies one candidate slot by its time window.
type RentalSlotRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ReserveRentalRequest books a contiguous block of slots for a member.
type ReserveRentalRequest struct {
	MemberID string              `json:"memberId" validate:"required"`
	CourtID  string              `json:"courtId" validate:"required"`
	Date     string              `json:"date" validate:"required,datetime=2006-01-02"`
	Slots    []RentalSlotRequest `json:"slots" validate:"required,min=1,dive"`
}

// CancelRentalRequest cancels a reserved rental.
type CancelRentalRequest struct {
	Reason string `json:"reason"`
}

// RentalQuery narrows rental listings.
type RentalQuery struct {
	MemberID string `form:"memberId"`
	State    string `form:"state"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
