package employee

type CreateEmployeeRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=150"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone" binding:"omitempty,max=30"`
	Position string  `json:"position" binding:"omitempty,max=100"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
	HireDate string  `json:"hire_date" binding:"required,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=150"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone" binding:"omitempty,max=30"`
	Position string  `json:"position" binding:"omitempty,max=100"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
	IsActive *bool   `json:"is_active" binding:"required"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	Position       string  `json:"position,omitempty"`
	TeamID         *string `json:"team_id,omitempty"`
	HireDate       string  `json:"hire_date"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
}

type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
