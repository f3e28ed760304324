package invoice

import "github.com/5niurb/timetracker/internal/timeentry"

type SubmitInvoiceRequest struct {
	// Period offset relative to today: 0 is the current period, -1 the
	// previous one. Submissions are usually for -1.
	Offset int `json:"offset"`
}

type InvoiceResponse struct {
	ID                      string `json:"id"`
	EmployeeID              string `json:"employee_id"`
	EmployeeName            string `json:"employee_name,omitempty"`
	PeriodStart             string `json:"period_start"`
	PeriodEnd               string `json:"period_end"`
	PeriodLabel             string `json:"period_label"`
	TotalHours              string `json:"total_hours"`
	TotalWages              string `json:"total_wages"`
	TotalCommissions        string `json:"total_commissions"`
	TotalTips               string `json:"total_tips"`
	TotalCashTipsReceived   string `json:"total_cash_tips_received"`
	TotalProductCommissions string `json:"total_product_commissions"`
	TotalPayable            string `json:"total_payable"`
	SubmittedAt             string `json:"submitted_at"`
}

type CanSubmitResponse struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PeriodLabel string `json:"period_label"`
	CanSubmit   bool   `json:"can_submit"`
}

type DayRowResponse struct {
	Entry              timeentry.TimeEntryResponse `json:"entry"`
	Wages              string                      `json:"wages"`
	Commissions        string                      `json:"commissions"`
	Tips               string                      `json:"tips"`
	CashTipsReceived   string                      `json:"cash_tips_received"`
	ProductCommissions string                      `json:"product_commissions"`
	Payable            string                      `json:"payable"`
}

type SummaryResponse struct {
	TotalHours              string `json:"total_hours"`
	TotalWages              string `json:"total_wages"`
	TotalCommissions        string `json:"total_commissions"`
	TotalTips               string `json:"total_tips"`
	TotalCashTipsReceived   string `json:"total_cash_tips_received"`
	TotalProductCommissions string `json:"total_product_commissions"`
	TotalPayable            string `json:"total_payable"`
	PayType                 string `json:"pay_type"`
}

type EarningsResponse struct {
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	PeriodLabel string           `json:"period_label"`
	Clamped     bool             `json:"clamped"`
	Summary     SummaryResponse  `json:"summary"`
	Days        []DayRowResponse `json:"days"`
}
