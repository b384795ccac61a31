package schedule

type CreateScheduleRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type UpdateScheduleRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type ScheduleResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Status      string  `json:"status"`
	PublishedBy *string `json:"published_by,omitempty"`
	PublishedAt *string `json:"published_at,omitempty"`
}

type ScheduleStatusResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	PublishedAt *string `json:"published_at,omitempty"`
}
