package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

func newDocsService(t *testing.T) (DocsService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := DocsService{
		Passengers: repositories.PassengerRepository{DB: db},
		Tickets:    repositories.TicketRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func passengerRow(id, ticketID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "ticket_request_id", "name", "age", "gender",
		"id_proof_type", "id_proof_number", "seat_preference", "created_at",
	}).AddRow(id, ticketID, "Asha Rao", 30, "Female", "AADHAAR", "1234", "LOWER", "2026-03-01 10:00:00")
}

func TestDocsServiceGenerate(t *testing.T) {
	svc, mock, done := newDocsService(t)
	defer done()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("FROM passengers WHERE id").WithArgs(int64(1)).
			WillReturnRows(passengerRow(1, 9))
		mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
			WillReturnRows(ticketRow(9, customer.ID, models.StatusConfirmed, 4, "PNR9X1", 1000))
	}

	pdf, filename, err := svc.GenerateETicket(customer, 1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}

	invoice, invName, err := svc.GenerateInvoice(customer, 1)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(invoice) == 0 || invName == "" {
		t.Fatalf("GenerateInvoice returned empty data")
	}
}

func TestDocsRequireIssuedTicket(t *testing.T) {
	svc, mock, done := newDocsService(t)
	defer done()

	mock.ExpectQuery("FROM passengers WHERE id").WithArgs(int64(1)).
		WillReturnRows(passengerRow(1, 9))
	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, customer.ID, models.StatusPending, 4, "", 0))

	if _, _, err := svc.GenerateETicket(customer, 1); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError before PNR assignment, got %v", err)
	}
}

func TestDocsHiddenFromForeignCustomer(t *testing.T) {
	svc, mock, done := newDocsService(t)
	defer done()

	mock.ExpectQuery("FROM passengers WHERE id").WithArgs(int64(1)).
		WillReturnRows(passengerRow(1, 9))
	mock.ExpectQuery("FROM ticket_requests WHERE id").WithArgs(int64(9)).
		WillReturnRows(ticketRow(9, 42, models.StatusConfirmed, 4, "PNR9X1", 1000))

	if _, _, err := svc.GenerateInvoice(customer, 1); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
