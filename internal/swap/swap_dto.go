package swap

type CreateSwapRequest struct {
	ShiftID          string `json:"shift_id" binding:"required,uuid"`
	TargetEmployeeID string `json:"target_employee_id" binding:"required,uuid"`
	Reason           string `json:"reason" binding:"omitempty,max=500"`
}

type DecideSwapRequest struct {
	Note string `json:"note" binding:"omitempty,max=500"`
}

type SwapResponse struct {
	ID               string  `json:"id"`
	ShiftID          string  `json:"shift_id"`
	RequesterID      string  `json:"requester_id"`
	TargetEmployeeID string  `json:"target_employee_id"`
	Status           string  `json:"status"`
	Reason           string  `json:"reason,omitempty"`
	DecisionNote     string  `json:"decision_note,omitempty"`
	DecidedBy        *string `json:"decided_by,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
	CreatedAt        string  `json:"created_at"`
}
