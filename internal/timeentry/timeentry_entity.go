package timeentry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeEntry is one employee work day. It owns its client entries and
// product sales: children are created with the parent and deleted
// before it, always inside one transaction.
type TimeEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index:uq_employee_entry_date,unique"`
	EntryDate    time.Time       `gorm:"type:date;not null;index:uq_employee_entry_date,unique"`
	Hours        decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	StartTime    *string         `gorm:"type:varchar(8)"`
	EndTime      *string         `gorm:"type:varchar(8)"`
	BreakMinutes int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ClientEntries []ClientEntry `gorm:"foreignKey:TimeEntryID"`
	ProductSales  []ProductSale `gorm:"foreignKey:TimeEntryID"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// ClientEntry records work performed for one client within a time
// entry: the commission earned and any tip, with a flag for tips that
// were already handed over in cash.
type ClientEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TimeEntryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientName      string          `gorm:"type:varchar(120);not null"`
	ProcedureName   *string         `gorm:"type:varchar(120)"`
	AmountEarned    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	TipAmount       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	TipReceivedCash bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
}

func (ClientEntry) TableName() string {
	return "client_entries"
}

type ProductSale struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TimeEntryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(120);not null"`
	SaleAmount       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	CreatedAt        time.Time
}

func (ProductSale) TableName() string {
	return "product_sales"
}
