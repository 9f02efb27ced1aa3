package models

import "strings"

type PaymentMode string

const (
	ModeUPI        PaymentMode = "UPI"
	ModeCreditCard PaymentMode = "CREDIT_CARD"
	ModeDebitCard  PaymentMode = "DEBIT_CARD"
	ModeNetBanking PaymentMode = "NET_BANKING"
	ModeCash       PaymentMode = "CASH"
	ModeCheque     PaymentMode = "CHEQUE"
)

func ParsePaymentMode(s string) (PaymentMode, bool) {
	switch PaymentMode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeUPI:
		return ModeUPI, true
	case ModeCreditCard:
		return ModeCreditCard, true
	case ModeDebitCard:
		return ModeDebitCard, true
	case ModeNetBanking:
		return ModeNetBanking, true
	case ModeCash:
		return ModeCash, true
	case ModeCheque:
		return ModeCheque, true
	default:
		return "", false
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentPending:
		return PaymentPending, true
	case PaymentCompleted:
		return PaymentCompleted, true
	case PaymentFailed:
		return PaymentFailed, true
	default:
		return "", false
	}
}

// Payment is one entry in the append-only ledger tied to a ticket request.
// Entries are never deleted; only the status moves, PENDING to a terminal
// COMPLETED or FAILED.
type Payment struct {
	ID              int64         `json:"id"`
	TicketRequestID int64         `json:"ticketId"`
	UserID          int64         `json:"userId"`
	Amount          float64       `json:"amount"`
	Mode            PaymentMode   `json:"mode"`
	Reference       string        `json:"reference,omitempty"`
	Remarks         string        `json:"remarks,omitempty"`
	Status          PaymentStatus `json:"status"`
	CreatedAt       string        `json:"createdAt,omitempty"`
}
