package timeentry

// Amount fields bind as decimal strings; an empty string means zero
// (an entry may legitimately carry no tip and no sale).

type ClientEntryInput struct {
	ClientName      string  `json:"client_name" binding:"required"`
	ProcedureName   *string `json:"procedure_name"`
	AmountEarned    string  `json:"amount_earned"`
	TipAmount       string  `json:"tip_amount"`
	TipReceivedCash bool    `json:"tip_received_cash"`
}

type ProductSaleInput struct {
	ProductName      string `json:"product_name" binding:"required"`
	SaleAmount       string `json:"sale_amount"`
	CommissionAmount string `json:"commission_amount"`
}

type CreateTimeEntryRequest struct {
	Date          string             `json:"date" binding:"required"`
	Hours         string             `json:"hours" binding:"required"`
	StartTime     *string            `json:"start_time"`
	EndTime       *string            `json:"end_time"`
	BreakMinutes  int                `json:"break_minutes" binding:"omitempty,min=0"`
	Override      bool               `json:"override"`
	ClientEntries []ClientEntryInput `json:"client_entries" binding:"omitempty,dive"`
	ProductSales  []ProductSaleInput `json:"product_sales" binding:"omitempty,dive"`
}

type ClientEntryResponse struct {
	ID              string  `json:"id"`
	ClientName      string  `json:"client_name"`
	ProcedureName   *string `json:"procedure_name,omitempty"`
	AmountEarned    string  `json:"amount_earned"`
	TipAmount       string  `json:"tip_amount"`
	TipReceivedCash bool    `json:"tip_received_cash"`
}

type ProductSaleResponse struct {
	ID               string `json:"id"`
	ProductName      string `json:"product_name"`
	SaleAmount       string `json:"sale_amount"`
	CommissionAmount string `json:"commission_amount"`
}

type TimeEntryResponse struct {
	ID            string                `json:"id"`
	EmployeeID    string                `json:"employee_id"`
	Date          string                `json:"date"`
	Hours         string                `json:"hours"`
	StartTime     *string               `json:"start_time,omitempty"`
	EndTime       *string               `json:"end_time,omitempty"`
	BreakMinutes  int                   `json:"break_minutes"`
	ClientEntries []ClientEntryResponse `json:"client_entries"`
	ProductSales  []ProductSaleResponse `json:"product_sales"`
}

type PeriodEntriesResponse struct {
	PeriodStart string              `json:"period_start"`
	PeriodEnd   string              `json:"period_end"`
	PeriodLabel string              `json:"period_label"`
	Entries     []TimeEntryResponse `json:"entries"`
}
