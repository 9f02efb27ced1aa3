package repositories

import (
	"database/sql"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type AuditRepository struct {
	DB *sql.DB
}

func (r AuditRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AuditRepository) Insert(actor, action, details string) error {
	if actor == "" {
		actor = "system"
	}
	if _, err := r.db().Exec(`
		INSERT INTO audit_logs (actor, action, details) VALUES (?, ?, ?)
	`, actor, action, details); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r AuditRepository) ListRecent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db().Query(`
		SELECT id, actor, action, details, DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM audit_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.AuditLog{}
	for rows.Next() {
		var a models.AuditLog
		if err := rows.Scan(&a.ID, &a.Actor, &a.Action, &a.Details, &a.CreatedAt); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
