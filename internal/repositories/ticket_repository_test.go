package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

func newMockDB(t *testing.T) (TicketRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return TicketRepository{DB: db}, mock, func() { db.Close() }
}

func TestAssignTicketRefusesSecondPnr(t *testing.T) {
	repo, mock, done := newMockDB(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED"))
	mock.ExpectQuery("SELECT COALESCE\\(assigned_pnr").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"assigned_pnr"}).AddRow("PNR9X1"))
	mock.ExpectRollback()

	err := repo.AssignTicket(9, "PNR9X2", 1200)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignTicketWritesPnrAndAmountOnce(t *testing.T) {
	repo, mock, done := newMockDB(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED"))
	mock.ExpectQuery("SELECT COALESCE\\(assigned_pnr").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"assigned_pnr"}).AddRow(""))
	mock.ExpectExec("UPDATE ticket_requests SET status").
		WithArgs("TICKET_CREATED", "PNR9X1", 1200.0, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.AssignTicket(9, "PNR9X1", 1200); err != nil {
		t.Fatalf("assign error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransitionMissingTicket(t *testing.T) {
	repo, mock, done := newMockDB(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM ticket_requests").WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	if err := repo.Approve(404, 1); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListByStatusReturnsEmptySliceNotNil(t *testing.T) {
	repo, mock, done := newMockDB(t)
	defer done()

	mock.ExpectQuery("FROM ticket_requests").WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	out, err := repo.ListByStatus(models.StatusPending)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if out == nil {
		t.Fatalf("empty result must be a slice, not nil")
	}
	if len(out) != 0 {
		t.Fatalf("got %d rows want 0", len(out))
	}
}
