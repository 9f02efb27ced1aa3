package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

func newPaymentService(t *testing.T) (PaymentService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := PaymentService{
		Payments: repositories.PaymentRepository{DB: db},
		Tickets:  repositories.TicketRepository{DB: db},
		Audit:    AuditService{Repo: repositories.AuditRepository{DB: db}},
	}
	return svc, mock, func() { db.Close() }
}

func TestRecordPaymentCreatesPendingEntry(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusTicketCreated, 4, "PNR9X1", 1000))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	payment, err := svc.Record(customer, 9, RecordPaymentInput{Amount: 1000, Mode: "UPI", Reference: "TXN-1"})
	if err != nil {
		t.Fatalf("record error: %v", err)
	}
	if payment.ID != 5 || payment.Status != models.PaymentPending {
		t.Fatalf("got id=%d status=%s", payment.ID, payment.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPaymentBeforeAmountAssigned(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusApproved, 4, "", 0))

	_, err := svc.Record(customer, 9, RecordPaymentInput{Amount: 1000, Mode: "UPI"})
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestRecordPaymentAmountMustMatchAssigned(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusTicketCreated, 4, "PNR9X1", 1000))

	_, err := svc.Record(customer, 9, RecordPaymentInput{Amount: 400, Mode: "UPI"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecordPaymentUnknownMode(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusTicketCreated, 4, "PNR9X1", 1000))

	_, err := svc.Record(customer, 9, RecordPaymentInput{Amount: 1000, Mode: "BARTER"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateStatusRejectsPendingTarget(t *testing.T) {
	svc, _, done := newPaymentService(t)
	defer done()

	if _, err := svc.UpdateStatus(employee, 5, "PENDING"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateStatusTerminalStatesAreFinal(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("COMPLETED"))
	mock.ExpectRollback()

	if _, err := svc.UpdateStatus(employee, 5, "FAILED"); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestUpdateStatusStaffOnly(t *testing.T) {
	svc, _, done := newPaymentService(t)
	defer done()

	if _, err := svc.UpdateStatus(customer, 5, "COMPLETED"); !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestTotalRevenueSumsCompletedOnly(t *testing.T) {
	svc, mock, done := newPaymentService(t)
	defer done()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
		WithArgs("COMPLETED").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(2500.0))

	total, err := svc.TotalRevenue(employee)
	if err != nil {
		t.Fatalf("revenue error: %v", err)
	}
	if total != 2500 {
		t.Fatalf("got %v want 2500", total)
	}

	if _, err := svc.TotalRevenue(customer); !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError for customer, got %v", err)
	}
}
