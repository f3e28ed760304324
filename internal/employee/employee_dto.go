package employee

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Pin        string `json:"pin" binding:"required,min=4,max=12"`
	Role       string `json:"role" binding:"omitempty,oneof=employee manager"`
	HourlyWage string `json:"hourly_wage" binding:"required"`
	PayType    string `json:"pay_type" binding:"omitempty,oneof=HOURLY COMMISSION HOURLY_COMMISSION"`
}

type UpdateEmployeeRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Pin        *string `json:"pin" binding:"omitempty,min=4,max=12"`
	Role       string  `json:"role" binding:"required,oneof=employee manager"`
	HourlyWage string  `json:"hourly_wage" binding:"required"`
	PayType    string  `json:"pay_type" binding:"required,oneof=HOURLY COMMISSION HOURLY_COMMISSION"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	HourlyWage string `json:"hourly_wage"`
	PayType    string `json:"pay_type"`
}
