package repositories

import (
	"database/sql"
	"errors"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type PassengerRepository struct {
	DB *sql.DB
}

func (r PassengerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const passengerColumns = `
	id, ticket_request_id, name, age, gender,
	COALESCE(id_proof_type, ''), COALESCE(id_proof_number, ''),
	COALESCE(seat_preference, 'NONE'),
	DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')`

func scanPassenger(row interface{ Scan(...any) error }) (models.Passenger, error) {
	var p models.Passenger
	err := row.Scan(
		&p.ID,
		&p.TicketRequestID,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.IDProofType,
		&p.IDProofNumber,
		&p.SeatPreference,
		&p.CreatedAt,
	)
	return p, err
}

// CreateBatch inserts all passengers in one transaction. Either the whole
// batch lands or none of it does; partial attachment would leave the
// ticket's passenger count inconsistent with the stored rows.
func (r PassengerRepository) CreateBatch(ticketID int64, passengers []models.Passenger) error {
	tx, err := r.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range passengers {
		if _, err := tx.Exec(`
			INSERT INTO passengers
				(ticket_request_id, name, age, gender, id_proof_type, id_proof_number, seat_preference)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, ticketID, p.Name, p.Age, string(p.Gender), p.IDProofType, p.IDProofNumber, string(p.SeatPreference)); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r PassengerRepository) ListByTicket(ticketID int64) ([]models.Passenger, error) {
	rows, err := r.db().Query(`SELECT`+passengerColumns+` FROM passengers WHERE ticket_request_id = ? ORDER BY id`, ticketID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		p, err := scanPassenger(rows)
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

func (r PassengerRepository) GetByID(id int64) (models.Passenger, error) {
	if id <= 0 {
		return models.Passenger{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT`+passengerColumns+` FROM passengers WHERE id = ? LIMIT 1`, id)
	p, err := scanPassenger(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Passenger{}, domain.NotFoundError{Resource: "passenger"}
	}
	if err != nil {
		return models.Passenger{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func (r PassengerRepository) CountByTicket(ticketID int64) (int, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM passengers WHERE ticket_request_id = ?`, ticketID).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}
