package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// Pay types gate which earning components the UI surfaces for an
// employee. The aggregator always computes all of them.
const (
	PayTypeHourly           = "HOURLY"
	PayTypeCommission       = "COMMISSION"
	PayTypeHourlyCommission = "HOURLY_COMMISSION"
)

type Employee struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName   string          `gorm:"column:full_name;type:varchar(120);not null"`
	Email      string          `gorm:"type:varchar(120);not null;uniqueIndex:uq_employee_email"`
	PinHash    string          `gorm:"column:pin_hash;type:varchar(100);not null"`
	Role       string          `gorm:"type:varchar(20);not null;default:'employee'"`
	HourlyWage decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	PayType    string          `gorm:"type:varchar(30);not null;default:'HOURLY'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
