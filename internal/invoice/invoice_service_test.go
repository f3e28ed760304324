package invoice_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/5niurb/timetracker/internal/employee"
	"github.com/5niurb/timetracker/internal/events"
	"github.com/5niurb/timetracker/internal/invoice"
	invoiceerrors "github.com/5niurb/timetracker/internal/invoice/errors"
	"github.com/5niurb/timetracker/internal/messaging/kafka"
	"github.com/5niurb/timetracker/internal/payperiod"
	"github.com/5niurb/timetracker/internal/timeentry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeInvoiceRepository struct {
	withTxFn            func(tx *sql.Tx) invoice.Repository
	insertFn            func(ctx context.Context, inv *invoice.Invoice) error
	findAllFn           func(ctx context.Context) ([]invoice.Invoice, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]invoice.Invoice, error)
	findByIDFn          func(ctx context.Context, id string) (*invoice.Invoice, error)
}

func (f *fakeInvoiceRepository) WithTx(tx *sql.Tx) invoice.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeInvoiceRepository) Insert(ctx context.Context, inv *invoice.Invoice) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, inv)
	}
	return nil
}

func (f *fakeInvoiceRepository) FindAll(ctx context.Context) ([]invoice.Invoice, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeInvoiceRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]invoice.Invoice, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeInvoiceRepository) FindByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEntryRepository struct {
	findByEmployeeAndRangeFn func(ctx context.Context, employeeID, startKey, endKey string, descending bool) ([]timeentry.TimeEntry, error)
}

func (f *fakeEntryRepository) WithTx(tx *sql.Tx) timeentry.Repository { return f }
func (f *fakeEntryRepository) Insert(ctx context.Context, entry *timeentry.TimeEntry) error {
	return nil
}
func (f *fakeEntryRepository) DeleteCascade(ctx context.Context, id string) error { return nil }
func (f *fakeEntryRepository) FindByID(ctx context.Context, id string) (*timeentry.TimeEntry, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEntryRepository) FindByEmployeeAndDate(ctx context.Context, employeeID, dateKey string) (*timeentry.TimeEntry, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEntryRepository) FindByEmployeeAndRange(ctx context.Context, employeeID, startKey, endKey string, descending bool) ([]timeentry.TimeEntry, error) {
	if f.findByEmployeeAndRangeFn != nil {
		return f.findByEmployeeAndRangeFn(ctx, employeeID, startKey, endKey, descending)
	}
	return nil, nil
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type invoiceServiceDeps struct {
	db           *sql.DB
	sqlMock      sqlmock.Sqlmock
	service      invoice.Service
	repo         *fakeInvoiceRepository
	entryRepo    *fakeEntryRepository
	employeeRepo *fakeEmployeeRepository
	outboxRepo   *fakeOutboxRepository
}

func setupInvoiceServiceTest(t *testing.T, today time.Time) *invoiceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &invoiceServiceDeps{
		db:           db,
		sqlMock:      sqlMock,
		repo:         &fakeInvoiceRepository{},
		entryRepo:    &fakeEntryRepository{},
		employeeRepo: &fakeEmployeeRepository{},
		outboxRepo:   &fakeOutboxRepository{},
	}
	deps.service = invoice.NewService(
		db, deps.repo, deps.entryRepo, deps.employeeRepo, deps.outboxRepo,
		func() time.Time { return today },
	)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func hourlyEmployee(id uuid.UUID, wage string) *employee.Employee {
	return &employee.Employee{
		ID:         id,
		FullName:   "Maria Lopez",
		HourlyWage: decimal.RequireFromString(wage),
		Role:       employee.RoleEmployee,
		PayType:    employee.PayTypeHourlyCommission,
	}
}

func workedDay(employeeID uuid.UUID, date time.Time) timeentry.TimeEntry {
	entryID := uuid.New()
	return timeentry.TimeEntry{
		ID:         entryID,
		EmployeeID: employeeID,
		EntryDate:  date,
		Hours:      decimal.RequireFromString("8"),
		ClientEntries: []timeentry.ClientEntry{
			{
				ID:              uuid.New(),
				TimeEntryID:     entryID,
				ClientName:      "Anna K",
				AmountEarned:    decimal.RequireFromString("50"),
				TipAmount:       decimal.RequireFromString("20"),
				TipReceivedCash: true,
			},
		},
		ProductSales: []timeentry.ProductSale{
			{
				ID:               uuid.New(),
				TimeEntryID:      entryID,
				ProductName:      "Serum",
				SaleAmount:       decimal.RequireFromString("60"),
				CommissionAmount: decimal.RequireFromString("15"),
			},
		},
	}
}

func TestInvoiceService_Submit(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupInvoiceServiceTest(t, payperiod.Date(2026, time.February, 20))
	defer deps.db.Close()

	deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return hourlyEmployee(employeeID, "20"), nil
	}
	deps.entryRepo.findByEmployeeAndRangeFn = func(ctx context.Context, eid, startKey, endKey string, descending bool) ([]timeentry.TimeEntry, error) {
		assert.Equal(t, "2026-02-01", startKey)
		assert.Equal(t, "2026-02-15", endKey)
		return []timeentry.TimeEntry{workedDay(employeeID, payperiod.Date(2026, time.February, 3))}, nil
	}

	expectTx(t, deps.sqlMock, true)
	deps.repo.insertFn = func(ctx context.Context, inv *invoice.Invoice) error {
		assert.Equal(t, employeeID, inv.EmployeeID)
		assert.Equal(t, "2026-02-01", payperiod.Format(inv.PeriodStart))
		assert.Equal(t, "2026-02-15", payperiod.Format(inv.PeriodEnd))
		assert.Equal(t, "160", inv.TotalWages.String())
		assert.Equal(t, "50", inv.TotalCommissions.String())
		assert.Equal(t, "20", inv.TotalTips.String())
		assert.Equal(t, "20", inv.TotalCashTipsReceived.String())
		assert.Equal(t, "15", inv.TotalProductCommissions.String())
		assert.Equal(t, "225", inv.TotalPayable.String())
		return nil
	}
	queued := false
	deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		queued = true
		assert.Equal(t, events.InvoiceSubmittedTopic, event.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)

		var payload events.InvoiceSubmittedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, employeeID.String(), payload.EmployeeID)
		assert.Equal(t, "2026-02-01", payload.PeriodStart)
		assert.Equal(t, "225", payload.TotalPayable)
		return nil
	}

	resp, err := deps.service.Submit(ctx, employeeID.String(), invoice.SubmitInvoiceRequest{Offset: -1})

	assert.NoError(t, err)
	assert.True(t, queued)
	assert.Equal(t, "225", resp.TotalPayable)
	assert.Equal(t, "Feb 1–15, 2026", resp.PeriodLabel)
	assert.Equal(t, "Maria Lopez", resp.EmployeeName)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestInvoiceService_Submit_AlreadySubmitted(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupInvoiceServiceTest(t, payperiod.Date(2026, time.February, 20))
	defer deps.db.Close()

	deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return hourlyEmployee(employeeID, "20"), nil
	}
	deps.repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]invoice.Invoice, error) {
		return []invoice.Invoice{{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			PeriodStart: payperiod.Date(2026, time.February, 1),
			PeriodEnd:   payperiod.Date(2026, time.February, 15),
		}}, nil
	}

	_, err := deps.service.Submit(ctx, employeeID.String(), invoice.SubmitInvoiceRequest{Offset: -1})

	assert.ErrorIs(t, err, invoiceerrors.ErrAlreadySubmitted)
	// Pre-check fails before any transaction is opened.
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestInvoiceService_Submit_RaceLosesToUniqueIndex(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupInvoiceServiceTest(t, payperiod.Date(2026, time.February, 20))
	defer deps.db.Close()

	deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return hourlyEmployee(employeeID, "20"), nil
	}

	expectTx(t, deps.sqlMock, false)
	deps.repo.insertFn = func(ctx context.Context, inv *invoice.Invoice) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_period"}
	}

	_, err := deps.service.Submit(ctx, employeeID.String(), invoice.SubmitInvoiceRequest{Offset: -1})

	assert.ErrorIs(t, err, invoiceerrors.ErrAlreadySubmitted)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestInvoiceService_CanSubmit(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupInvoiceServiceTest(t, payperiod.Date(2026, time.February, 20))
	defer deps.db.Close()

	deps.repo.findAllByEmployeeFn = func(ctx context.Context, eid string) ([]invoice.Invoice, error) {
		return []invoice.Invoice{{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			PeriodStart: payperiod.Date(2026, time.February, 1),
			PeriodEnd:   payperiod.Date(2026, time.February, 15),
		}}, nil
	}

	taken, err := deps.service.CanSubmit(ctx, employeeID.String(), -1)
	assert.NoError(t, err)
	assert.False(t, taken.CanSubmit)
	assert.Equal(t, "2026-02-01", taken.PeriodStart)

	open, err := deps.service.CanSubmit(ctx, employeeID.String(), 0)
	assert.NoError(t, err)
	assert.True(t, open.CanSubmit)
	assert.Equal(t, "2026-02-16", open.PeriodStart)
	assert.Equal(t, "2026-02-28", open.PeriodEnd)
}

func TestInvoiceService_GetByID_Ownership(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	invoiceID := uuid.New()

	deps := setupInvoiceServiceTest(t, payperiod.Date(2026, time.February, 20))
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*invoice.Invoice, error) {
		return &invoice.Invoice{
			ID:          invoiceID,
			EmployeeID:  ownerID,
			PeriodStart: payperiod.Date(2026, time.February, 1),
			PeriodEnd:   payperiod.Date(2026, time.February, 15),
			SubmittedAt: time.Now().UTC(),
		}, nil
	}

	_, err := deps.service.GetByID(ctx, uuid.New().String(), "employee", invoiceID.String())
	assert.ErrorIs(t, err, invoiceerrors.ErrNotInvoiceOwner)

	resp, err := deps.service.GetByID(ctx, uuid.New().String(), "manager", invoiceID.String())
	assert.NoError(t, err)
	assert.Equal(t, invoiceID.String(), resp.ID)

	resp, err = deps.service.GetByID(ctx, ownerID.String(), "employee", invoiceID.String())
	assert.NoError(t, err)
	assert.Equal(t, ownerID.String(), resp.EmployeeID)
}

func TestInvoiceService_PreviewClampsSummaryDoesNot(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupInvoiceServiceTest(t, payperiod.Date(2026, time.February, 10))
	defer deps.db.Close()

	deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return hourlyEmployee(employeeID, "17.50"), nil
	}

	var askedEnd string
	deps.entryRepo.findByEmployeeAndRangeFn = func(ctx context.Context, eid, startKey, endKey string, descending bool) ([]timeentry.TimeEntry, error) {
		askedEnd = endKey
		return []timeentry.TimeEntry{
			{ID: uuid.New(), EmployeeID: employeeID, EntryDate: payperiod.Date(2026, time.February, 5), Hours: decimal.RequireFromString("7.75")},
		}, nil
	}

	preview, err := deps.service.PreviewUpToToday(ctx, employeeID.String(), 0, false)
	assert.NoError(t, err)
	assert.True(t, preview.Clamped)
	assert.Equal(t, "2026-02-10", preview.PeriodEnd)
	assert.Equal(t, "2026-02-10", askedEnd)
	assert.Equal(t, "135.625", preview.Summary.TotalWages)
	assert.Len(t, preview.Days, 1)

	summary, err := deps.service.FullPeriodSummary(ctx, employeeID.String(), 0, false)
	assert.NoError(t, err)
	assert.False(t, summary.Clamped)
	assert.Equal(t, "2026-02-15", summary.PeriodEnd)
	assert.Equal(t, "2026-02-15", askedEnd)
}

func TestInvoiceService_Preview_PastPeriodNotClamped(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	deps := setupInvoiceServiceTest(t, payperiod.Date(2026, time.February, 20))
	defer deps.db.Close()

	deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return hourlyEmployee(employeeID, "20"), nil
	}

	preview, err := deps.service.PreviewUpToToday(ctx, employeeID.String(), -1, false)
	assert.NoError(t, err)
	assert.False(t, preview.Clamped)
	assert.Equal(t, "2026-02-15", preview.PeriodEnd)
}
