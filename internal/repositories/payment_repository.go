package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `
	id, ticket_request_id, user_id, amount, mode,
	COALESCE(reference, ''), COALESCE(remarks, ''), status,
	DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.TicketRequestID,
		&p.UserID,
		&p.Amount,
		&p.Mode,
		&p.Reference,
		&p.Remarks,
		&p.Status,
		&p.CreatedAt,
	)
	return p, err
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (ticket_request_id, user_id, amount, mode, reference, remarks, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.TicketRequestID, p.UserID, p.Amount, string(p.Mode), p.Reference, p.Remarks, string(models.PaymentPending))
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT`+paymentColumns+` FROM payments WHERE id = ? LIMIT 1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func (r PaymentRepository) listQuery(where string, args ...any) ([]models.Payment, error) {
	rows, err := r.db().Query(`SELECT`+paymentColumns+` FROM payments `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r PaymentRepository) ListByTicket(ticketID int64) ([]models.Payment, error) {
	return r.listQuery(`WHERE ticket_request_id = ?`, ticketID)
}

func (r PaymentRepository) ListByUser(userID int64) ([]models.Payment, error) {
	return r.listQuery(`WHERE user_id = ?`, userID)
}

func (r PaymentRepository) ListAll() ([]models.Payment, error) {
	return r.listQuery(``)
}

// UpdateStatus flips PENDING to a terminal state under a row lock. A lost
// race or an already-settled payment surfaces as InvalidStateError.
func (r PaymentRepository) UpdateStatus(id int64, status models.PaymentStatus) error {
	tx, err := r.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	err = tx.QueryRow(`SELECT status FROM payments WHERE id = ? FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if models.PaymentStatus(current) != models.PaymentPending {
		return domain.InvalidStateError{
			Resource: "payment",
			Msg:      fmt.Sprintf("already %s", current),
		}
	}
	if _, err := tx.Exec(`UPDATE payments SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// TotalRevenue sums completed payments, computed fresh per query.
func (r PaymentRepository) TotalRevenue() (float64, error) {
	var total float64
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = ?
	`, string(models.PaymentCompleted)).Scan(&total)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return total, nil
}
