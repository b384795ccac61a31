package leave

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	TypeID     string  `json:"type_id" binding:"required,uuid"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
	StartTime  *string `json:"start_time" binding:"omitempty,len=5"`
	EndTime    *string `json:"end_time" binding:"omitempty,len=5"`
	Reason     string  `json:"reason"`
}

type UpdateLeaveRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	StartTime *string `json:"start_time" binding:"omitempty,len=5"`
	EndTime   *string `json:"end_time" binding:"omitempty,len=5"`
	Reason    string  `json:"reason"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,min=2"`
}

type CreateLeaveTypeRequest struct {
	Name             string `json:"name" binding:"required,min=2,max=50"`
	DefaultDays      int    `json:"default_days" binding:"required,min=1,max=366"`
	RequiresApproval *bool  `json:"requires_approval" binding:"required"`
	IsPaid           *bool  `json:"is_paid" binding:"required"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	TypeID          string  `json:"type_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	StartTime       *string `json:"start_time,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DefaultDays      int    `json:"default_days"`
	RequiresApproval bool   `json:"requires_approval"`
	IsPaid           bool   `json:"is_paid"`
	IsActive         bool   `json:"is_active"`
}

type ConflictShiftResponse struct {
	ShiftID  string `json:"shift_id"`
	StartAt  string `json:"start_at"`
	EndAt    string `json:"end_at"`
	Resolved bool   `json:"resolved"`
}

type ConflictCheckResponse struct {
	CanBeApproved bool                    `json:"can_be_approved"`
	Conflicts     []ConflictShiftResponse `json:"conflicts"`
	Message       string                  `json:"message,omitempty"`
}
