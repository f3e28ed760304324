package invoice

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, inv *Invoice) error
	FindAll(ctx context.Context) ([]Invoice, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Invoice, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db:    r.db,
		sqlDB: r.sqlDB,
		tx:    tx,
	}
}

// Insert goes through the carried transaction so the invoice and its
// outbox event commit together. A violation of uq_employee_period
// surfaces here when two submissions race past the pre-check.
func (r *repository) Insert(ctx context.Context, inv *Invoice) error {
	const query = `
        INSERT INTO invoices (
            id, employee_id, period_start, period_end,
            total_hours, total_wages, total_commissions, total_tips,
            total_cash_tips_received, total_product_commissions, total_payable,
            submitted_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		inv.ID, inv.EmployeeID, inv.PeriodStart, inv.PeriodEnd,
		inv.TotalHours, inv.TotalWages, inv.TotalCommissions, inv.TotalTips,
		inv.TotalCashTipsReceived, inv.TotalProductCommissions, inv.TotalPayable,
		inv.SubmittedAt,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]Invoice, error) {
	var invs []Invoice
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("period_start DESC").
		Find(&invs).Error
	return invs, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Invoice, error) {
	var invs []Invoice
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("period_start DESC").
		Find(&invs).Error
	return invs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
