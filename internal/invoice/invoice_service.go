package invoice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/5niurb/timetracker/internal/earnings"
	"github.com/5niurb/timetracker/internal/employee"
	"github.com/5niurb/timetracker/internal/events"
	invoiceerrors "github.com/5niurb/timetracker/internal/invoice/errors"
	"github.com/5niurb/timetracker/internal/messaging/kafka"
	"github.com/5niurb/timetracker/internal/payperiod"
	"github.com/5niurb/timetracker/internal/shared/contextutil"
	"github.com/5niurb/timetracker/internal/timeentry"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitInvoiceRequest) (InvoiceResponse, error)
	CanSubmit(ctx context.Context, employeeID string, offset int) (CanSubmitResponse, error)
	GetAll(ctx context.Context, actorID, actorRole, employeeID string) ([]InvoiceResponse, error)
	GetByID(ctx context.Context, actorID, actorRole, id string) (InvoiceResponse, error)
	FullPeriodSummary(ctx context.Context, employeeID string, offset int, descending bool) (EarningsResponse, error)
	PreviewUpToToday(ctx context.Context, employeeID string, offset int, descending bool) (EarningsResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	entryRepo    timeentry.Repository
	employeeRepo employee.Repository
	outboxRepo   kafka.OutboxRepository
	today        func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	entryRepo timeentry.Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	today func() time.Time,
) Service {
	return &service{
		db:           db,
		repo:         repo,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		outboxRepo:   outboxRepo,
		today:        today,
	}
}

// Submit creates the one invoice an employee gets for a pay period.
// The CanSubmit pre-check gives the friendly negative answer; the
// unique index on (employee_id, period_start, period_end) is what
// actually decides a concurrent race, so its violation maps to the
// same "already submitted" result.
func (s *service) Submit(ctx context.Context, employeeID string, req SubmitInvoiceRequest) (InvoiceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return InvoiceResponse{}, err
	}

	period := payperiod.ByOffset(req.Offset, s.today())

	existing, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return InvoiceResponse{}, err
	}
	if !earnings.CanSubmit(employeeID, period, toSubmittedPeriods(existing)) {
		return InvoiceResponse{}, invoiceerrors.ErrAlreadySubmitted
	}

	// Authoritative summary: never clamped to today.
	entries, err := s.entryRepo.FindByEmployeeAndRange(
		ctx, employeeID,
		payperiod.Format(period.Start), payperiod.Format(period.End),
		false,
	)
	if err != nil {
		return InvoiceResponse{}, err
	}
	summary := earnings.Summarize(*emp, entries)

	inv := &Invoice{
		ID:                      uuid.New(),
		EmployeeID:              employeeUUID,
		PeriodStart:             period.Start,
		PeriodEnd:               period.End,
		TotalHours:              summary.TotalHours,
		TotalWages:              summary.TotalWages,
		TotalCommissions:        summary.TotalCommissions,
		TotalTips:               summary.TotalTips,
		TotalCashTipsReceived:   summary.TotalCashTipsReceived,
		TotalProductCommissions: summary.TotalProductCommissions,
		TotalPayable:            summary.TotalPayable,
		SubmittedAt:             time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InvoiceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Insert(ctx, inv); err != nil {
		return InvoiceResponse{}, mapSubmitError(err)
	}

	event, err := buildSubmittedEvent(ctx, inv)
	if err != nil {
		return InvoiceResponse{}, err
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, event); err != nil {
		return InvoiceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return InvoiceResponse{}, mapSubmitError(err)
	}

	contextutil.GetLogger(ctx, zap.L()).Info("invoice submitted",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("period_start", payperiod.Format(period.Start)),
		zap.String("period_end", payperiod.Format(period.End)),
	)

	resp := mapToResponse(*inv)
	resp.EmployeeName = emp.FullName
	return resp, nil
}

func (s *service) CanSubmit(ctx context.Context, employeeID string, offset int) (CanSubmitResponse, error) {
	period := payperiod.ByOffset(offset, s.today())

	existing, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return CanSubmitResponse{}, err
	}

	return CanSubmitResponse{
		PeriodStart: payperiod.Format(period.Start),
		PeriodEnd:   payperiod.Format(period.End),
		PeriodLabel: period.Label(),
		CanSubmit:   earnings.CanSubmit(employeeID, period, toSubmittedPeriods(existing)),
	}, nil
}

func (s *service) GetAll(ctx context.Context, actorID, actorRole, employeeID string) ([]InvoiceResponse, error) {
	var invs []Invoice
	var err error

	switch {
	case employeeID == "" && actorRole == employee.RoleManager:
		// Managers with no filter see every employee's invoices.
		invs, err = s.repo.FindAll(ctx)
	case employeeID == "" || employeeID == actorID:
		invs, err = s.repo.FindAllByEmployee(ctx, actorID)
	case actorRole != employee.RoleManager:
		return nil, invoiceerrors.ErrNotInvoiceOwner
	default:
		invs, err = s.repo.FindAllByEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = mapToResponse(inv)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actorID, actorRole, id string) (InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, invoiceerrors.ErrInvoiceNotFound
		}
		return InvoiceResponse{}, err
	}

	if inv.EmployeeID.String() != actorID && actorRole != employee.RoleManager {
		return InvoiceResponse{}, invoiceerrors.ErrNotInvoiceOwner
	}

	return mapToResponse(*inv), nil
}

// FullPeriodSummary is the authoritative reduction over the whole
// period, the same one Submit records.
func (s *service) FullPeriodSummary(ctx context.Context, employeeID string, offset int, descending bool) (EarningsResponse, error) {
	period := payperiod.ByOffset(offset, s.today())
	return s.earningsFor(ctx, employeeID, period, false, descending)
}

// PreviewUpToToday clamps the period end to today so a mid-period
// check only counts elapsed days. Preview only; Submit never clamps.
func (s *service) PreviewUpToToday(ctx context.Context, employeeID string, offset int, descending bool) (EarningsResponse, error) {
	period := payperiod.ByOffset(offset, s.today())
	clamped := period.ClampEnd(s.today())
	return s.earningsFor(ctx, employeeID, clamped, !clamped.End.Equal(period.End), descending)
}

func (s *service) earningsFor(ctx context.Context, employeeID string, period payperiod.Period, clamped, descending bool) (EarningsResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return EarningsResponse{}, err
	}

	entries, err := s.entryRepo.FindByEmployeeAndRange(
		ctx, employeeID,
		payperiod.Format(period.Start), payperiod.Format(period.End),
		descending,
	)
	if err != nil {
		return EarningsResponse{}, err
	}

	summary := earnings.Summarize(*emp, entries)
	rows := earnings.Breakdown(*emp, entries)

	resp := EarningsResponse{
		PeriodStart: payperiod.Format(period.Start),
		PeriodEnd:   payperiod.Format(period.End),
		PeriodLabel: period.Label(),
		Clamped:     clamped,
		Summary: SummaryResponse{
			TotalHours:              summary.TotalHours.String(),
			TotalWages:              summary.TotalWages.String(),
			TotalCommissions:        summary.TotalCommissions.String(),
			TotalTips:               summary.TotalTips.String(),
			TotalCashTipsReceived:   summary.TotalCashTipsReceived.String(),
			TotalProductCommissions: summary.TotalProductCommissions.String(),
			TotalPayable:            summary.TotalPayable.String(),
			PayType:                 emp.PayType,
		},
		Days: make([]DayRowResponse, len(rows)),
	}
	for i, row := range rows {
		resp.Days[i] = DayRowResponse{
			Entry:              timeentry.MapToResponse(row.Entry),
			Wages:              row.Wages.String(),
			Commissions:        row.Commissions.String(),
			Tips:               row.Tips.String(),
			CashTipsReceived:   row.CashTipsReceived.String(),
			ProductCommissions: row.ProductCommissions.String(),
			Payable:            row.Payable.String(),
		}
	}
	return resp, nil
}

func toSubmittedPeriods(invs []Invoice) []earnings.SubmittedPeriod {
	submitted := make([]earnings.SubmittedPeriod, len(invs))
	for i, inv := range invs {
		submitted[i] = earnings.SubmittedPeriod{
			EmployeeID:  inv.EmployeeID.String(),
			PeriodStart: payperiod.Format(inv.PeriodStart),
			PeriodEnd:   payperiod.Format(inv.PeriodEnd),
		}
	}
	return submitted
}

func buildSubmittedEvent(ctx context.Context, inv *Invoice) (kafka.OutboxEvent, error) {
	payload, err := json.Marshal(events.InvoiceSubmittedEvent{
		EventType:    "invoice.submitted",
		InvoiceID:    inv.ID.String(),
		EmployeeID:   inv.EmployeeID.String(),
		PeriodStart:  payperiod.Format(inv.PeriodStart),
		PeriodEnd:    payperiod.Format(inv.PeriodEnd),
		TotalPayable: inv.TotalPayable.String(),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return kafka.OutboxEvent{}, err
	}

	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "invoice",
		AggregateID:   inv.ID.String(),
		EventType:     "invoice.submitted",
		Topic:         events.InvoiceSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}, nil
}

func mapSubmitError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return invoiceerrors.ErrAlreadySubmitted
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return invoiceerrors.ErrAlreadySubmitted
	}

	return err
}

func mapToResponse(inv Invoice) InvoiceResponse {
	period := payperiod.Period{Start: inv.PeriodStart, End: inv.PeriodEnd}
	resp := InvoiceResponse{
		ID:                      inv.ID.String(),
		EmployeeID:              inv.EmployeeID.String(),
		PeriodStart:             payperiod.Format(inv.PeriodStart),
		PeriodEnd:               payperiod.Format(inv.PeriodEnd),
		PeriodLabel:             period.Label(),
		TotalHours:              inv.TotalHours.String(),
		TotalWages:              inv.TotalWages.String(),
		TotalCommissions:        inv.TotalCommissions.String(),
		TotalTips:               inv.TotalTips.String(),
		TotalCashTipsReceived:   inv.TotalCashTipsReceived.String(),
		TotalProductCommissions: inv.TotalProductCommissions.String(),
		TotalPayable:            inv.TotalPayable.String(),
		SubmittedAt:             inv.SubmittedAt.Format(time.RFC3339),
	}
	if inv.Employee != nil {
		resp.EmployeeName = inv.Employee.FullName
	}
	return resp
}
