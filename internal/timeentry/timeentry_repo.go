package timeentry

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, entry *TimeEntry) error
	DeleteCascade(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID, dateKey string) (*TimeEntry, error)
	FindByEmployeeAndRange(ctx context.Context, employeeID, startKey, endKey string, descending bool) ([]TimeEntry, error)
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

// Insert writes the entry and all of its children through the carried
// transaction so the day is stored atomically.
func (r *repository) Insert(ctx context.Context, entry *TimeEntry) error {
	exec := r.execer()

	const entryQuery = `
        INSERT INTO time_entries (
            id, employee_id, entry_date, hours, start_time, end_time, break_minutes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
    `
	if _, err := exec.ExecContext(
		ctx, entryQuery,
		entry.ID, entry.EmployeeID, entry.EntryDate, entry.Hours,
		entry.StartTime, entry.EndTime, entry.BreakMinutes,
	); err != nil {
		return err
	}

	const clientQuery = `
        INSERT INTO client_entries (
            id, time_entry_id, client_name, procedure_name, amount_earned, tip_amount, tip_received_cash, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `
	for _, ce := range entry.ClientEntries {
		if _, err := exec.ExecContext(
			ctx, clientQuery,
			ce.ID, entry.ID, ce.ClientName, ce.ProcedureName,
			ce.AmountEarned, ce.TipAmount, ce.TipReceivedCash,
		); err != nil {
			return err
		}
	}

	const saleQuery = `
        INSERT INTO product_sales (
            id, time_entry_id, product_name, sale_amount, commission_amount, created_at
        ) VALUES ($1, $2, $3, $4, $5, NOW())
    `
	for _, ps := range entry.ProductSales {
		if _, err := exec.ExecContext(
			ctx, saleQuery,
			ps.ID, entry.ID, ps.ProductName, ps.SaleAmount, ps.CommissionAmount,
		); err != nil {
			return err
		}
	}

	return nil
}

// DeleteCascade removes children before the parent. The schema has no
// ON DELETE CASCADE; ownership is enforced here.
func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	exec := r.execer()

	if _, err := exec.ExecContext(ctx, `DELETE FROM client_entries WHERE time_entry_id = $1`, id); err != nil {
		return err
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM product_sales WHERE time_entry_id = $1`, id); err != nil {
		return err
	}
	_, err := exec.ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var entry TimeEntry
	err := r.db.WithContext(ctx).
		Preload("ClientEntries").
		Preload("ProductSales").
		First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID, dateKey string) (*TimeEntry, error) {
	var entry TimeEntry
	err := r.db.WithContext(ctx).
		First(&entry, "employee_id = ? AND entry_date = ?", employeeID, dateKey).Error
	return &entry, err
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeID, startKey, endKey string, descending bool) ([]TimeEntry, error) {
	order := "entry_date ASC"
	if descending {
		order = "entry_date DESC"
	}

	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Preload("ClientEntries").
		Preload("ProductSales").
		Where("employee_id = ?", employeeID).
		Where("entry_date >= ? AND entry_date <= ?", startKey, endKey).
		Order(order).
		Find(&entries).Error
	return entries, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
