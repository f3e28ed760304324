package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the once-only submitted summary of a pay period for one
// employee. Rows are immutable: there is no update or delete path, and
// the unique employee/period index is what makes a concurrent double
// submission lose.
type Invoice struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;index:uq_employee_period,unique"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	PeriodStart time.Time `gorm:"type:date;not null;index:uq_employee_period,unique"`
	PeriodEnd   time.Time `gorm:"type:date;not null;index:uq_employee_period,unique"`

	TotalHours              decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0"`
	TotalWages              decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalCommissions        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalTips               decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalCashTipsReceived   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalProductCommissions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalPayable            decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	SubmittedAt time.Time `gorm:"not null"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
