package shift

type CreateShiftRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	TemplateID *string `json:"template_id" binding:"omitempty,uuid"`
	ScheduleID *string `json:"schedule_id" binding:"omitempty,uuid"`
	StartAt    string  `json:"start_at" binding:"required"`
	EndAt      string  `json:"end_at" binding:"required"`
	Notes      string  `json:"notes" binding:"omitempty,max=500"`
}

type UpdateShiftRequest struct {
	StartAt string `json:"start_at" binding:"required"`
	EndAt   string `json:"end_at" binding:"required"`
	Notes   string `json:"notes" binding:"omitempty,max=500"`
}

type CreateTemplateRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	ShiftType string `json:"shift_type" binding:"omitempty,oneof=REGULAR OVERTIME ON_CALL"`
	StartTime string `json:"start_time" binding:"required,len=5"`
	EndTime   string `json:"end_time" binding:"required,len=5"`
}

type ShiftResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	TemplateID *string `json:"template_id,omitempty"`
	ScheduleID *string `json:"schedule_id,omitempty"`
	StartAt    string  `json:"start_at"`
	EndAt      string  `json:"end_at"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type TemplateResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShiftType string `json:"shift_type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
