package dto

// CourtScheduleRequest defines one weekly open-hours window.
type CourtScheduleRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Available *bool  `json:"available"`
}

// CreateCourtRequest registers a new court with its weekly schedule.
type CreateCourtRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Sports      []string               `json:"sports" validate:"required,min=1"`
	Indoor      bool                   `json:"indoor"`
	Capacity    int                    `json:"capacity" validate:"required,min=1"`
	HourlyPrice float64                `json:"hourlyPrice" validate:"required,gt=0"`
	Schedules   []CourtScheduleRequest `json:"schedules" validate:"required,min=1,dive"`
}

// UpdateCourtRequest partially updates a court. A non-nil Schedules slice
// replaces the existing weekly schedule wholesale.
type UpdateCourtRequest struct {
	Name        *string                `json:"name"`
	Sports      []string               `json:"sports"`
	Indoor      *bool                  `json:"indoor"`
	Capacity    *int                   `json:"capacity" validate:"omitempty,min=1"`
	HourlyPrice *float64               `json:"hourlyPrice" validate:"omitempty,gt=0"`
	Active      *bool                  `json:"active"`
	Schedules   []CourtScheduleRequest `json:"schedules" validate:"omitempty,dive"`
}
