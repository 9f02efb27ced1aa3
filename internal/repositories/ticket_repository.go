package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketColumns = `
	id, customer_id, booking_type, origin, destination,
	DATE_FORMAT(travel_date, '%Y-%m-%d'),
	COALESCE(DATE_FORMAT(return_date, '%Y-%m-%d'), ''),
	travel_class, passenger_count, COALESCE(special_requirements, ''),
	status, COALESCE(approved_ticket_count, 0),
	COALESCE(assigned_pnr, ''), COALESCE(payment_amount, 0),
	DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'),
	DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s')`

func scanTicket(row interface{ Scan(...any) error }) (models.TicketRequest, error) {
	var t models.TicketRequest
	err := row.Scan(
		&t.ID,
		&t.CustomerID,
		&t.BookingType,
		&t.Origin,
		&t.Destination,
		&t.TravelDate,
		&t.ReturnDate,
		&t.TravelClass,
		&t.PassengerCount,
		&t.SpecialRequirements,
		&t.Status,
		&t.ApprovedTicketCount,
		&t.AssignedPnr,
		&t.PaymentAmount,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r TicketRepository) Create(t models.TicketRequest) (int64, error) {
	var returnDate any
	if t.ReturnDate != "" {
		returnDate = t.ReturnDate
	}
	res, err := r.db().Exec(`
		INSERT INTO ticket_requests
			(customer_id, booking_type, origin, destination, travel_date, return_date,
			 travel_class, passenger_count, special_requirements, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.CustomerID, string(t.BookingType), t.Origin, t.Destination,
		t.TravelDate, returnDate, string(t.TravelClass),
		t.PassengerCount, t.SpecialRequirements, string(models.StatusPending),
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r TicketRepository) GetByID(id int64) (models.TicketRequest, error) {
	if id <= 0 {
		return models.TicketRequest{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT`+ticketColumns+` FROM ticket_requests WHERE id = ? LIMIT 1`, id)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TicketRequest{}, domain.NotFoundError{Resource: "ticket request"}
	}
	if err != nil {
		return models.TicketRequest{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TicketRepository) listQuery(where string, args ...any) ([]models.TicketRequest, error) {
	rows, err := r.db().Query(`SELECT`+ticketColumns+` FROM ticket_requests `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	// Callers iterate unconditionally; always hand back a slice, never nil.
	out := []models.TicketRequest{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r TicketRepository) ListByStatus(status models.TicketStatus) ([]models.TicketRequest, error) {
	return r.listQuery(`WHERE status = ?`, string(status))
}

func (r TicketRepository) ListByCustomer(customerID int64) ([]models.TicketRequest, error) {
	return r.listQuery(`WHERE customer_id = ?`, customerID)
}

func (r TicketRepository) ListByTravelDate(date string) ([]models.TicketRequest, error) {
	return r.listQuery(`WHERE travel_date = ?`, date)
}

func (r TicketRepository) ListAll() ([]models.TicketRequest, error) {
	return r.listQuery(``)
}

func (r TicketRepository) CountByStatus(status models.TicketStatus) (int, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM ticket_requests WHERE status = ?`, string(status)).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// lockStatus reads the current status under a row lock so the subsequent
// update is a compare-and-set: a concurrent transition commits first and
// this transaction observes the new state, failing cleanly.
func lockStatus(tx *sql.Tx, id int64) (models.TicketStatus, error) {
	var status string
	err := tx.QueryRow(`SELECT status FROM ticket_requests WHERE id = ? FOR UPDATE`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NotFoundError{Resource: "ticket request"}
	}
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	return models.TicketStatus(status), nil
}

func (r TicketRepository) transition(id int64, action models.TicketAction, apply func(tx *sql.Tx, to models.TicketStatus) error) error {
	from, to, ok := models.Transition(action)
	if !ok {
		return domain.InternalError{Msg: fmt.Sprintf("unknown ticket action %q", action)}
	}

	tx, err := r.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	current, err := lockStatus(tx, id)
	if err != nil {
		return err
	}
	if current != from {
		return domain.InvalidStateError{
			Resource: "ticket request",
			Msg:      fmt.Sprintf("cannot %s from state %s", action, current),
		}
	}
	if err := apply(tx, to); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Approve moves PENDING -> APPROVED and records the approved ticket count.
func (r TicketRepository) Approve(id int64, approvedCount int) error {
	return r.transition(id, models.ActionApprove, func(tx *sql.Tx, to models.TicketStatus) error {
		if _, err := tx.Exec(`
			UPDATE ticket_requests SET status = ?, approved_ticket_count = ? WHERE id = ?
		`, string(to), approvedCount, id); err != nil {
			return domain.InternalError{Err: err}
		}
		return nil
	})
}

// AssignTicket moves APPROVED -> TICKET_CREATED, setting the PNR and payment
// amount exactly once. Both writes share the transition's transaction.
func (r TicketRepository) AssignTicket(id int64, pnr string, paymentAmount float64) error {
	return r.transition(id, models.ActionCreateTicket, func(tx *sql.Tx, to models.TicketStatus) error {
		var existing string
		if err := tx.QueryRow(`SELECT COALESCE(assigned_pnr, '') FROM ticket_requests WHERE id = ?`, id).Scan(&existing); err != nil {
			return domain.InternalError{Err: err}
		}
		if existing != "" {
			return domain.InvalidStateError{Resource: "ticket request", Msg: "pnr already assigned"}
		}
		if _, err := tx.Exec(`
			UPDATE ticket_requests SET status = ?, assigned_pnr = ?, payment_amount = ? WHERE id = ?
		`, string(to), pnr, paymentAmount, id); err != nil {
			return domain.InternalError{Err: err}
		}
		return nil
	})
}

// Confirm moves TICKET_CREATED -> CONFIRMED. A completed payment must exist;
// the check runs inside the same transaction as the status flip.
func (r TicketRepository) Confirm(id int64) error {
	return r.transition(id, models.ActionConfirm, func(tx *sql.Tx, to models.TicketStatus) error {
		var paid int
		if err := tx.QueryRow(`
			SELECT COUNT(*) FROM payments WHERE ticket_request_id = ? AND status = ?
		`, id, string(models.PaymentCompleted)).Scan(&paid); err != nil {
			return domain.InternalError{Err: err}
		}
		if paid == 0 {
			return domain.InvalidStateError{Resource: "ticket request", Msg: "no completed payment"}
		}
		if _, err := tx.Exec(`
			UPDATE ticket_requests SET status = ? WHERE id = ?
		`, string(to), id); err != nil {
			return domain.InternalError{Err: err}
		}
		return nil
	})
}
