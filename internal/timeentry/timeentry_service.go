package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/5niurb/timetracker/internal/employee"
	"github.com/5niurb/timetracker/internal/payperiod"
	timeentryerrors "github.com/5niurb/timetracker/internal/timeentry/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, employeeID string, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	Delete(ctx context.Context, actorID, actorRole, id string) error
	GetByPeriod(ctx context.Context, employeeID string, offset int, descending bool) (PeriodEntriesResponse, error)
}

type service struct {
	db    *sql.DB
	repo  Repository
	today func() time.Time
}

// NewService takes today as a function so period math never reads the
// process clock directly.
func NewService(db *sql.DB, repo Repository, today func() time.Time) Service {
	return &service{db: db, repo: repo, today: today}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateTimeEntryRequest) (TimeEntryResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrEntryNotFound
	}

	entryDate, err := payperiod.Parse(req.Date)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidDate
	}

	entry, err := buildEntry(employeeUUID, entryDate, req)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, payperiod.Format(entryDate))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeEntryResponse{}, err
	}
	if err == nil && existing != nil {
		if !req.Override {
			return TimeEntryResponse{}, timeentryerrors.ErrDuplicateDate
		}
		// Explicit override: replace the day, children first.
		if err := qtx.DeleteCascade(ctx, existing.ID.String()); err != nil {
			return TimeEntryResponse{}, err
		}
	}

	if err := qtx.Insert(ctx, entry); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	return MapToResponse(*entry), nil
}

func (s *service) Delete(ctx context.Context, actorID, actorRole, id string) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timeentryerrors.ErrEntryNotFound
		}
		return err
	}

	if entry.EmployeeID.String() != actorID && actorRole != employee.RoleManager {
		return timeentryerrors.ErrNotEntryOwner
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteCascade(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) GetByPeriod(ctx context.Context, employeeID string, offset int, descending bool) (PeriodEntriesResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return PeriodEntriesResponse{}, timeentryerrors.ErrEntryNotFound
	}

	period := payperiod.ByOffset(offset, s.today())
	entries, err := s.repo.FindByEmployeeAndRange(
		ctx, employeeID,
		payperiod.Format(period.Start), payperiod.Format(period.End),
		descending,
	)
	if err != nil {
		return PeriodEntriesResponse{}, err
	}

	resp := PeriodEntriesResponse{
		PeriodStart: payperiod.Format(period.Start),
		PeriodEnd:   payperiod.Format(period.End),
		PeriodLabel: period.Label(),
		Entries:     make([]TimeEntryResponse, len(entries)),
	}
	for i, entry := range entries {
		resp.Entries[i] = MapToResponse(entry)
	}
	return resp, nil
}

func buildEntry(employeeID uuid.UUID, entryDate time.Time, req CreateTimeEntryRequest) (*TimeEntry, error) {
	hours, err := decimal.NewFromString(req.Hours)
	if err != nil || hours.IsNegative() {
		return nil, timeentryerrors.ErrInvalidHours
	}
	if req.BreakMinutes < 0 {
		return nil, timeentryerrors.ErrInvalidHours
	}

	entry := &TimeEntry{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		EntryDate:    entryDate,
		Hours:        hours,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
	}

	for _, in := range req.ClientEntries {
		amountEarned, err := parseAmount(in.AmountEarned)
		if err != nil {
			return nil, err
		}
		tipAmount, err := parseAmount(in.TipAmount)
		if err != nil {
			return nil, err
		}
		entry.ClientEntries = append(entry.ClientEntries, ClientEntry{
			ID:              uuid.New(),
			TimeEntryID:     entry.ID,
			ClientName:      in.ClientName,
			ProcedureName:   in.ProcedureName,
			AmountEarned:    amountEarned,
			TipAmount:       tipAmount,
			TipReceivedCash: in.TipReceivedCash,
		})
	}

	for _, in := range req.ProductSales {
		saleAmount, err := parseAmount(in.SaleAmount)
		if err != nil {
			return nil, err
		}
		commission, err := parseAmount(in.CommissionAmount)
		if err != nil {
			return nil, err
		}
		entry.ProductSales = append(entry.ProductSales, ProductSale{
			ID:               uuid.New(),
			TimeEntryID:      entry.ID,
			ProductName:      in.ProductName,
			SaleAmount:       saleAmount,
			CommissionAmount: commission,
		})
	}

	return entry, nil
}

// parseAmount treats an absent amount as zero, not as an error.
func parseAmount(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(v)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, timeentryerrors.ErrInvalidAmount
	}
	return amount, nil
}

func MapToResponse(entry TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:            entry.ID.String(),
		EmployeeID:    entry.EmployeeID.String(),
		Date:          payperiod.Format(entry.EntryDate),
		Hours:         entry.Hours.String(),
		StartTime:     entry.StartTime,
		EndTime:       entry.EndTime,
		BreakMinutes:  entry.BreakMinutes,
		ClientEntries: make([]ClientEntryResponse, len(entry.ClientEntries)),
		ProductSales:  make([]ProductSaleResponse, len(entry.ProductSales)),
	}
	for i, ce := range entry.ClientEntries {
		resp.ClientEntries[i] = ClientEntryResponse{
			ID:              ce.ID.String(),
			ClientName:      ce.ClientName,
			ProcedureName:   ce.ProcedureName,
			AmountEarned:    ce.AmountEarned.String(),
			TipAmount:       ce.TipAmount.String(),
			TipReceivedCash: ce.TipReceivedCash,
		}
	}
	for i, ps := range entry.ProductSales {
		resp.ProductSales[i] = ProductSaleResponse{
			ID:               ps.ID.String(),
			ProductName:      ps.ProductName,
			SaleAmount:       ps.SaleAmount.String(),
			CommissionAmount: ps.CommissionAmount.String(),
		}
	}
	return resp
}
