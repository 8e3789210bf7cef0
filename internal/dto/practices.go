package dto

// PracticeScheduleRequest is one weekly occurrence of a practice.
type PracticeScheduleRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// SavePracticeRequest creates or fully updates a practice. Trainer and
// schedule sets are replaced wholesale on update.
type SavePracticeRequest struct {
	Sport      string                    `json:"sport" validate:"required"`
	CourtID    string                    `json:"courtId" validate:"required"`
	StartDate  string                    `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string                    `json:"endDate" validate:"required,datetime=2006-01-02"`
	Price      float64                   `json:"price" validate:"gte=0"`
	TrainerIDs []string                  `json:"trainerIds" validate:"omitempty,dive,required"`
	Schedules  []PracticeScheduleRequest `json:"schedules" validate:"required,min=1,dive"`
}

// DeletePracticeResponse reports the slots released by a practice removal.
type DeletePracticeResponse struct {
	FreedSlotCount int      `json:"freedSlotCount"`
	ProcessedDates []string `json:"processedDates"`
}
