package events

import "time"

const InvoiceSubmittedTopic = "payroll.invoice.submitted.v1"

// InvoiceSubmittedEvent is published through the outbox when a pay
// period invoice is created; the downstream mailer consumes it.
type InvoiceSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	InvoiceID    string    `json:"invoice_id"`
	EmployeeID   string    `json:"employee_id"`
	PeriodStart  string    `json:"period_start"`
	PeriodEnd    string    `json:"period_end"`
	TotalPayable string    `json:"total_payable"`
	OccurredAt   time.Time `json:"occurred_at"`
}
