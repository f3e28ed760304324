// Package earnings reduces a pay period's time entries to payroll
// totals. Every function is pure: inputs are snapshots supplied by the
// caller, there is no storage and no clock in here.
package earnings

import (
	"github.com/5niurb/timetracker/internal/employee"
	"github.com/5niurb/timetracker/internal/payperiod"
	"github.com/5niurb/timetracker/internal/timeentry"

	"github.com/shopspring/decimal"
)

// Summary is one employee's earnings over a set of time entries.
// Cash tips were already handed to the employee on the floor, so
// TotalPayable subtracts them: it is strictly what is still owed
// through payroll. Nothing here is rounded; rendering to currency
// precision is the presentation layer's job.
type Summary struct {
	TotalHours              decimal.Decimal `json:"total_hours"`
	TotalWages              decimal.Decimal `json:"total_wages"`
	TotalCommissions        decimal.Decimal `json:"total_commissions"`
	TotalTips               decimal.Decimal `json:"total_tips"`
	TotalCashTipsReceived   decimal.Decimal `json:"total_cash_tips_received"`
	TotalProductCommissions decimal.Decimal `json:"total_product_commissions"`
	TotalPayable            decimal.Decimal `json:"total_payable"`
}

// DayDetail is the same reduction applied to a single time entry, one
// row per worked day, with the child records attached.
type DayDetail struct {
	Entry              timeentry.TimeEntry `json:"-"`
	Date               string              `json:"date"`
	Hours              decimal.Decimal     `json:"hours"`
	Wages              decimal.Decimal     `json:"wages"`
	Commissions        decimal.Decimal     `json:"commissions"`
	Tips               decimal.Decimal     `json:"tips"`
	CashTipsReceived   decimal.Decimal     `json:"cash_tips_received"`
	ProductCommissions decimal.Decimal     `json:"product_commissions"`
	Payable            decimal.Decimal     `json:"payable"`
}

// Summarize reduces entries (pre-filtered to one employee and one
// period) to period totals. Wages are always computed from the hourly
// wage; whether they are shown is the caller's pay-type policy.
func Summarize(emp employee.Employee, entries []timeentry.TimeEntry) Summary {
	var s Summary
	for _, entry := range entries {
		d := reduceEntry(emp, entry)
		s.TotalHours = s.TotalHours.Add(d.Hours)
		s.TotalWages = s.TotalWages.Add(d.Wages)
		s.TotalCommissions = s.TotalCommissions.Add(d.Commissions)
		s.TotalTips = s.TotalTips.Add(d.Tips)
		s.TotalCashTipsReceived = s.TotalCashTipsReceived.Add(d.CashTipsReceived)
		s.TotalProductCommissions = s.TotalProductCommissions.Add(d.ProductCommissions)
	}
	s.TotalPayable = s.TotalWages.
		Add(s.TotalCommissions).
		Add(s.TotalTips).
		Add(s.TotalProductCommissions).
		Sub(s.TotalCashTipsReceived)
	return s
}

// Breakdown returns the per-day rows in the order the entries were
// given: stable for a fixed input, ordering is the caller's choice.
func Breakdown(emp employee.Employee, entries []timeentry.TimeEntry) []DayDetail {
	details := make([]DayDetail, len(entries))
	for i, entry := range entries {
		details[i] = reduceEntry(emp, entry)
	}
	return details
}

func reduceEntry(emp employee.Employee, entry timeentry.TimeEntry) DayDetail {
	d := DayDetail{
		Entry: entry,
		Date:  payperiod.Format(entry.EntryDate),
		Hours: entry.Hours,
		Wages: entry.Hours.Mul(emp.HourlyWage),
	}
	for _, ce := range entry.ClientEntries {
		d.Commissions = d.Commissions.Add(ce.AmountEarned)
		d.Tips = d.Tips.Add(ce.TipAmount)
		if ce.TipReceivedCash {
			d.CashTipsReceived = d.CashTipsReceived.Add(ce.TipAmount)
		}
	}
	for _, ps := range entry.ProductSales {
		d.ProductCommissions = d.ProductCommissions.Add(ps.CommissionAmount)
	}
	d.Payable = d.Wages.
		Add(d.Commissions).
		Add(d.Tips).
		Add(d.ProductCommissions).
		Sub(d.CashTipsReceived)
	return d
}

// SubmittedPeriod is the snapshot row CanSubmit checks against: the
// canonical bounds of a period an employee has already invoiced.
type SubmittedPeriod struct {
	EmployeeID  string
	PeriodStart string
	PeriodEnd   string
}

// CanSubmit reports whether no invoice exists yet for this exact
// employee and period. The comparison is string-exact on canonical
// bounds, never a range overlap. This is only the advisory pre-check;
// the storage layer's unique constraint is the authoritative guard
// against two concurrent submissions.
func CanSubmit(employeeID string, period payperiod.Period, submitted []SubmittedPeriod) bool {
	start := payperiod.Format(period.Start)
	end := payperiod.Format(period.End)
	for _, sp := range submitted {
		if sp.EmployeeID == employeeID && sp.PeriodStart == start && sp.PeriodEnd == end {
			return false
		}
	}
	return true
}
