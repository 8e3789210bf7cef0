package dto

// GenerateSlotsRequest asks for slot generation over an inclusive date range.
type GenerateSlotsRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// GenerateSlotsResponse reports the outcome of a generation run.
type GenerateSlotsResponse struct {
	InsertedCount    int  `json:"insertedCount"`
	AlreadyGenerated bool `json:"alreadyGenerated"`
}

// SlotQuery narrows slot listings.
type SlotQuery struct {
	CourtID string `form:"courtId" validate:"required"`
	Date    string `form:"date" validate:"required,datetime=2006-01-02"`
	State   string `form:"state"`
}

// SlotSheetQuery requests a printable slot sheet for a court and date.
type SlotSheetQuery struct {
	CourtID string `form:"courtId" validate:"required"`
	Date    string `form:"date" validate:"required,datetime=2006-01-02"`
	Format  string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
