package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

var (
	customer = domain.Principal{ID: 3, Email: "customer1@yatrasathi.com", Role: domain.RoleCustomer}
	employee = domain.Principal{ID: 2, Email: "employee1@yatrasathi.com", Role: domain.RoleEmployee}
)

func newTicketService(t *testing.T) (TicketService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TicketService{
		Tickets:       repositories.TicketRepository{DB: db},
		Payments:      repositories.PaymentRepository{DB: db},
		Audit:         AuditService{Repo: repositories.AuditRepository{DB: db}},
		FarePerTicket: 500,
		Now:           func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local) },
	}
	return svc, mock, func() { db.Close() }
}

var ticketCols = []string{
	"id", "customer_id", "booking_type", "origin", "destination",
	"travel_date", "return_date", "travel_class", "passenger_count",
	"special_requirements", "status", "approved_ticket_count",
	"assigned_pnr", "payment_amount", "created_at", "updated_at",
}

func ticketRow(id, customerID int64, status models.TicketStatus, passengerCount int, pnr string, amount float64) *sqlmock.Rows {
	return sqlmock.NewRows(ticketCols).AddRow(
		id, customerID, "TRAIN", "Pune", "Delhi",
		"2026-03-05", "", "SLEEPER", passengerCount,
		"", string(status), 0, pnr, amount,
		"2026-03-01 10:00:00", "2026-03-01 10:00:00",
	)
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectExec("INSERT INTO ticket_requests").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	ticket, err := svc.Submit(customer, SubmitTicketInput{
		BookingType:    "train",
		Origin:         "Pune",
		Destination:    "Delhi",
		TravelDate:     "2026-03-05",
		TravelClass:    "sleeper",
		PassengerCount: 4,
	})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if ticket.ID != 7 {
		t.Fatalf("got id %d want 7", ticket.ID)
	}
	if ticket.Status != models.StatusPending {
		t.Fatalf("new request must start PENDING, got %s", ticket.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitRejectedForStaff(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	_, err := svc.Submit(employee, SubmitTicketInput{})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	base := SubmitTicketInput{
		BookingType:    "TRAIN",
		Origin:         "Pune",
		Destination:    "Delhi",
		TravelDate:     "2026-03-05",
		TravelClass:    "SLEEPER",
		PassengerCount: 2,
	}

	cases := []struct {
		name   string
		mutate func(*SubmitTicketInput)
	}{
		{"unknown booking type", func(in *SubmitTicketInput) { in.BookingType = "BUS" }},
		{"blank origin", func(in *SubmitTicketInput) { in.Origin = "  " }},
		{"zero passengers", func(in *SubmitTicketInput) { in.PassengerCount = 0 }},
		{"class from wrong domain", func(in *SubmitTicketInput) { in.TravelClass = "ECONOMY" }},
		{"malformed date", func(in *SubmitTicketInput) { in.TravelDate = "05-03-2026" }},
		{"past travel date", func(in *SubmitTicketInput) { in.TravelDate = "2026-02-28" }},
		{"return before travel", func(in *SubmitTicketInput) { in.ReturnDate = "2026-03-04" }},
		{"hotel without checkout", func(in *SubmitTicketInput) {
			in.BookingType = "HOTEL"
			in.TravelClass = "DELUXE"
		}},
	}
	for _, c := range cases {
		in := base
		c.mutate(&in)
		if _, err := svc.Submit(customer, in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %v", c.name, err)
		}
	}
}

func TestSubmitAllowsTodayTravel(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectExec("INSERT INTO ticket_requests").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	in := SubmitTicketInput{
		BookingType:    "FLIGHT",
		Origin:         "Mumbai",
		Destination:    "Chennai",
		TravelDate:     "2026-03-01",
		TravelClass:    "ECONOMY",
		PassengerCount: 1,
	}
	if _, err := svc.Submit(customer, in); err != nil {
		t.Fatalf("same-day travel should be accepted: %v", err)
	}
}

func TestApprovePartialSuggestsAmount(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusPending, 4, "", 0))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING"))
	mock.ExpectExec("UPDATE ticket_requests SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	ticket, suggested, err := svc.Approve(employee, 9, 2)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if ticket.Status != models.StatusApproved || ticket.ApprovedTicketCount != 2 {
		t.Fatalf("got status=%s count=%d", ticket.Status, ticket.ApprovedTicketCount)
	}
	if suggested != 1000 {
		t.Fatalf("suggested amount: got %v want 1000", suggested)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApproveCountAboveRequestedRejected(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusPending, 2, "", 0))

	if _, _, err := svc.Approve(employee, 9, 5); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestApproveLosesRaceToConcurrentApproval(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	// The row was PENDING when read but another transaction approved it
	// before this one took the lock.
	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusPending, 4, "", 0))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED"))
	mock.ExpectRollback()

	if _, _, err := svc.Approve(employee, 9, 2); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestCreateTicketFromPendingConflicts(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING"))
	mock.ExpectRollback()

	if _, err := svc.CreateTicket(employee, 9, "PNR9X1", 1000); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestCreateTicketValidatesInput(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	if _, err := svc.CreateTicket(employee, 9, "  ", 1000); !domain.IsValidation(err) {
		t.Fatalf("blank pnr: expected ValidationError, got %v", err)
	}
	if _, err := svc.CreateTicket(employee, 9, "PNR9X1", 0); !domain.IsValidation(err) {
		t.Fatalf("zero amount: expected ValidationError, got %v", err)
	}
}

func TestConfirmWithoutCompletedPayment(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("TICKET_CREATED"))
	mock.ExpectQuery("FROM payments").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	if _, err := svc.Confirm(employee, 9); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestConfirmWithCompletedPayment(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("TICKET_CREATED"))
	mock.ExpectQuery("FROM payments").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("UPDATE ticket_requests SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusConfirmed, 4, "PNR9X1", 1000))
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	ticket, err := svc.Confirm(employee, 9)
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if ticket.Status != models.StatusConfirmed {
		t.Fatalf("got status %s want CONFIRMED", ticket.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetHidesForeignTicketFromCustomer(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, 42, models.StatusPending, 4, "", 0))

	if _, err := svc.Get(customer, 9); !domain.IsNotFound(err) {
		t.Fatalf("foreign ticket must look missing, got %v", err)
	}
}

func TestByStatusStaffOnly(t *testing.T) {
	svc, _, done := newTicketService(t)
	defer done()

	if _, err := svc.ByStatus(customer, models.StatusPending); !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}
