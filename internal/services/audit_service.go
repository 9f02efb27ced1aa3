package services

import (
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// AuditService appends to the audit trail. Audit failures are logged but
// never fail the business operation that triggered them.
type AuditService struct {
	Repo      repositories.AuditRepository
	RequestID string
}

func (s AuditService) Log(actor, action, details string) {
	if err := s.Repo.Insert(actor, action, details); err != nil {
		utils.LogEvent(s.RequestID, "audit", action, "insert failed: "+err.Error())
		return
	}
	utils.LogEvent(s.RequestID, "audit", action, details)
}
