package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	id, name, email, COALESCE(phone, ''), COALESCE(aadhaar, ''),
	password_hash, role, active,
	DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Aadhaar,
		&u.PasswordHash,
		&u.Role,
		&u.Active,
		&u.CreatedAt,
	)
	return u, err
}

// GetByLogin looks a user up by email or phone; login forms accept either.
func (r UserRepository) GetByLogin(login string) (models.User, error) {
	login = strings.TrimSpace(login)
	row := r.db().QueryRow(`SELECT`+userColumns+` FROM users WHERE email = ? OR phone = ? LIMIT 1`, login, login)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT`+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepository) ExistsByEmailOrPhone(email, phone string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ? OR phone = ?`, email, phone).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, aadhaar, password_hash, role, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.Name, u.Email, u.Phone, u.Aadhaar, u.PasswordHash, u.Role, u.Active)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r UserRepository) listQuery(where string, args ...any) ([]models.User, error) {
	rows, err := r.db().Query(`SELECT`+userColumns+` FROM users `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// ListStaff returns employee and admin accounts for the admin console.
func (r UserRepository) ListStaff() ([]models.User, error) {
	return r.listQuery(`WHERE role IN (?, ?)`, string(domain.RoleEmployee), string(domain.RoleAdmin))
}

func (r UserRepository) ListAll() ([]models.User, error) {
	return r.listQuery(``)
}

func (r UserRepository) ListCustomers() ([]models.User, error) {
	return r.listQuery(`WHERE role = ?`, string(domain.RoleCustomer))
}

func (r UserRepository) UpdateActive(id int64, active bool) error {
	res, err := r.db().Exec(`UPDATE users SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) UpdatePassword(id int64, passwordHash string) error {
	res, err := r.db().Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) Count() (int, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

func (r UserRepository) CountByRole(role string) (int, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&n); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}
