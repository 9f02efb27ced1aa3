package services

import (
	"fmt"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// PaymentService maintains the append-only payment ledger. No uniqueness
// constraint limits payments per ticket; retries and partial payments each
// get their own entry.
type PaymentService struct {
	Payments repositories.PaymentRepository
	Tickets  repositories.TicketRepository
	Audit    AuditService
}

type RecordPaymentInput struct {
	Amount    float64 `json:"amount"`
	Mode      string  `json:"mode"`
	Reference string  `json:"reference"`
	Remarks   string  `json:"remarks"`
}

// Record creates a PENDING ledger entry for a ticket. Customer-initiated
// payments must match the amount assigned at ticket creation; staff entries
// (cash desk) are unconstrained.
func (s PaymentService) Record(p domain.Principal, ticketID int64, in RecordPaymentInput) (models.Payment, error) {
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return models.Payment{}, err
	}
	if !p.IsStaff() && ticket.CustomerID != p.ID {
		return models.Payment{}, domain.NotFoundError{Resource: "ticket request"}
	}
	if in.Amount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	mode, ok := models.ParsePaymentMode(in.Mode)
	if !ok {
		return models.Payment{}, domain.ValidationError{Field: "mode", Msg: "unknown payment mode"}
	}
	if p.Role == domain.RoleCustomer {
		if ticket.PaymentAmount <= 0 {
			return models.Payment{}, domain.InvalidStateError{Resource: "ticket request", Msg: "no payment amount assigned yet"}
		}
		if in.Amount != ticket.PaymentAmount {
			return models.Payment{}, domain.ValidationError{
				Field: "amount",
				Msg:   fmt.Sprintf("must equal the assigned payment amount %s", utils.FormatMoney(ticket.PaymentAmount)),
			}
		}
	}

	payment := models.Payment{
		TicketRequestID: ticketID,
		UserID:          p.ID,
		Amount:          in.Amount,
		Mode:            mode,
		Reference:       in.Reference,
		Remarks:         in.Remarks,
		Status:          models.PaymentPending,
	}
	id, err := s.Payments.Create(payment)
	if err != nil {
		return models.Payment{}, err
	}
	payment.ID = id
	s.Audit.Log(p.Email, "MAKE_PAYMENT", fmt.Sprintf("TicketRequestId=%d, PaymentId=%d", ticketID, id))
	return payment, nil
}

// UpdateStatus settles a PENDING payment to COMPLETED or FAILED. Terminal
// states never transition again.
func (s PaymentService) UpdateStatus(p domain.Principal, paymentID int64, status string) (models.Payment, error) {
	if !p.IsStaff() {
		return models.Payment{}, domain.ForbiddenError{}
	}
	parsed, ok := models.ParsePaymentStatus(status)
	if !ok || parsed == models.PaymentPending {
		return models.Payment{}, domain.ValidationError{Field: "status", Msg: "must be COMPLETED or FAILED"}
	}
	if err := s.Payments.UpdateStatus(paymentID, parsed); err != nil {
		return models.Payment{}, err
	}
	payment, err := s.Payments.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	s.Audit.Log(p.Email, "UPDATE_PAYMENT_STATUS", fmt.Sprintf("PaymentId=%d, Status=%s", paymentID, parsed))
	return payment, nil
}

// Mine lists the caller's own payments.
func (s PaymentService) Mine(p domain.Principal) ([]models.Payment, error) {
	return s.Payments.ListByUser(p.ID)
}

// All lists every ledger entry; staff only.
func (s PaymentService) All(p domain.Principal) ([]models.Payment, error) {
	if !p.IsStaff() {
		return nil, domain.ForbiddenError{}
	}
	return s.Payments.ListAll()
}

// ByTicket lists the ledger for one ticket. Customers only see their own.
func (s PaymentService) ByTicket(p domain.Principal, ticketID int64) ([]models.Payment, error) {
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff() && ticket.CustomerID != p.ID {
		return nil, domain.NotFoundError{Resource: "ticket request"}
	}
	return s.Payments.ListByTicket(ticketID)
}

// TotalRevenue sums completed payments across the ledger; staff only.
func (s PaymentService) TotalRevenue(p domain.Principal) (float64, error) {
	if !p.IsStaff() {
		return 0, domain.ForbiddenError{}
	}
	return s.Payments.TotalRevenue()
}
