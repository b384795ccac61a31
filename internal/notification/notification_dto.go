package notification

import "encoding/json"

type NotificationResponse struct {
	ID          string          `json:"id"`
	RecipientID string          `json:"recipient_id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Message     string          `json:"message"`
	ShiftID     *string         `json:"shift_id,omitempty"`
	LeaveID     *string         `json:"leave_id,omitempty"`
	SwapID      *string         `json:"swap_id,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	ActionURL   string          `json:"action_url,omitempty"`
	IsRead      bool            `json:"is_read"`
	ReadAt      *string         `json:"read_at,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type EmailLogResponse struct {
	ID             string `json:"id"`
	RecipientEmail string `json:"recipient_email"`
	Subject        string `json:"subject"`
	EmailType      string `json:"email_type"`
	Success        bool   `json:"success"`
	ErrorText      string `json:"error_text,omitempty"`
	CreatedAt      string `json:"created_at"`
}
