package services

import (
	"fmt"
	"strings"
	"time"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// TicketService owns the booking request lifecycle. Every mutating call
// takes the caller's Principal and checks the role before touching the
// store, so an unauthorized caller learns nothing about the target.
type TicketService struct {
	Tickets       repositories.TicketRepository
	Payments      repositories.PaymentRepository
	Audit         AuditService
	FarePerTicket float64

	// Now is a seam for tests; defaults to time.Now.
	Now func() time.Time
}

func (s TicketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type SubmitTicketInput struct {
	BookingType         string `json:"bookingType"`
	Origin              string `json:"origin"`
	Destination         string `json:"destination"`
	TravelDate          string `json:"travelDate"`
	ReturnDate          string `json:"returnDate"`
	TravelClass         string `json:"travelClass"`
	PassengerCount      int    `json:"passengerCount"`
	SpecialRequirements string `json:"specialRequirements"`
}

// Submit validates and creates a booking request in state PENDING.
func (s TicketService) Submit(p domain.Principal, in SubmitTicketInput) (models.TicketRequest, error) {
	if p.Role != domain.RoleCustomer {
		return models.TicketRequest{}, domain.ForbiddenError{Msg: "only customers can submit booking requests"}
	}

	bt, ok := models.ParseBookingType(in.BookingType)
	if !ok {
		return models.TicketRequest{}, domain.ValidationError{Field: "bookingType", Msg: "must be TRAIN, FLIGHT or HOTEL"}
	}
	origin := strings.TrimSpace(in.Origin)
	destination := strings.TrimSpace(in.Destination)
	if origin == "" {
		return models.TicketRequest{}, domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if destination == "" {
		return models.TicketRequest{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if in.PassengerCount < 1 {
		return models.TicketRequest{}, domain.ValidationError{Field: "passengerCount", Msg: "must be at least 1"}
	}
	class := models.TravelClass(strings.ToUpper(strings.TrimSpace(in.TravelClass)))
	if !models.ValidClass(bt, class) {
		return models.TicketRequest{}, domain.ValidationError{
			Field: "travelClass",
			Msg:   fmt.Sprintf("%q is not a valid class for %s bookings", in.TravelClass, bt),
		}
	}

	travelDate, err := utils.ParseDate(in.TravelDate)
	if err != nil {
		return models.TicketRequest{}, domain.ValidationError{Field: "travelDate", Msg: "must be YYYY-MM-DD", Err: err}
	}
	today := utils.DateOnly(s.now())
	if travelDate.Before(today) {
		return models.TicketRequest{}, domain.ValidationError{Field: "travelDate", Msg: "must not be in the past"}
	}

	returnRaw := strings.TrimSpace(in.ReturnDate)
	if returnRaw == "" && models.ReturnDateRequired(bt) {
		return models.TicketRequest{}, domain.ValidationError{Field: "returnDate", Msg: fmt.Sprintf("required for %s bookings", bt)}
	}
	if returnRaw != "" {
		returnDate, err := utils.ParseDate(returnRaw)
		if err != nil {
			return models.TicketRequest{}, domain.ValidationError{Field: "returnDate", Msg: "must be YYYY-MM-DD", Err: err}
		}
		if returnDate.Before(travelDate) {
			return models.TicketRequest{}, domain.ValidationError{Field: "returnDate", Msg: "must not precede travelDate"}
		}
		returnRaw = utils.FormatDate(returnDate)
	}

	ticket := models.TicketRequest{
		CustomerID:          p.ID,
		BookingType:         bt,
		Origin:              origin,
		Destination:         destination,
		TravelDate:          utils.FormatDate(travelDate),
		ReturnDate:          returnRaw,
		TravelClass:         class,
		PassengerCount:      in.PassengerCount,
		SpecialRequirements: strings.TrimSpace(in.SpecialRequirements),
		Status:              models.StatusPending,
	}

	id, err := s.Tickets.Create(ticket)
	if err != nil {
		return models.TicketRequest{}, err
	}
	ticket.ID = id
	s.Audit.Log(p.Email, "CREATE_TICKET_REQUEST", fmt.Sprintf("RequestId=%d", id))
	return ticket, nil
}

// Approve moves a PENDING request to APPROVED with a staff-supplied ticket
// count. Partial approval (count below the requested passenger count) is
// allowed. Returns the updated request and a suggested payment amount.
func (s TicketService) Approve(p domain.Principal, requestID int64, approvedCount int) (models.TicketRequest, float64, error) {
	if !p.IsStaff() {
		return models.TicketRequest{}, 0, domain.ForbiddenError{}
	}
	ticket, err := s.Tickets.GetByID(requestID)
	if err != nil {
		return models.TicketRequest{}, 0, err
	}
	if approvedCount < 1 {
		return models.TicketRequest{}, 0, domain.ValidationError{Field: "count", Msg: "must be at least 1"}
	}
	if approvedCount > ticket.PassengerCount {
		return models.TicketRequest{}, 0, domain.ValidationError{
			Field: "count",
			Msg:   fmt.Sprintf("exceeds requested passenger count %d", ticket.PassengerCount),
		}
	}
	if err := s.Tickets.Approve(requestID, approvedCount); err != nil {
		return models.TicketRequest{}, 0, err
	}
	ticket.Status = models.StatusApproved
	ticket.ApprovedTicketCount = approvedCount

	suggested := float64(approvedCount) * s.FarePerTicket
	s.Audit.Log(p.Email, "APPROVE_TICKET_REQUEST", fmt.Sprintf("RequestId=%d, count=%d", requestID, approvedCount))
	return ticket, suggested, nil
}

// CreateTicket assigns the PNR and payment amount, moving APPROVED to
// TICKET_CREATED. Both values are immutable afterwards; a second call fails.
func (s TicketService) CreateTicket(p domain.Principal, requestID int64, pnr string, paymentAmount float64) (models.TicketRequest, error) {
	if !p.IsStaff() {
		return models.TicketRequest{}, domain.ForbiddenError{}
	}
	pnr = strings.TrimSpace(pnr)
	if pnr == "" {
		return models.TicketRequest{}, domain.ValidationError{Field: "pnr", Msg: "required"}
	}
	if paymentAmount <= 0 {
		return models.TicketRequest{}, domain.ValidationError{Field: "paymentAmount", Msg: "must be positive"}
	}
	if err := s.Tickets.AssignTicket(requestID, pnr, paymentAmount); err != nil {
		return models.TicketRequest{}, err
	}
	ticket, err := s.Tickets.GetByID(requestID)
	if err != nil {
		return models.TicketRequest{}, err
	}
	s.Audit.Log(p.Email, "CREATE_TICKET", fmt.Sprintf("RequestId=%d, PNR=%s, Amount=%s", requestID, pnr, utils.FormatMoney(paymentAmount)))
	return ticket, nil
}

// Confirm moves TICKET_CREATED to CONFIRMED, the terminal state. The
// repository verifies a completed payment exists in the same transaction.
func (s TicketService) Confirm(p domain.Principal, requestID int64) (models.TicketRequest, error) {
	if !p.IsStaff() {
		return models.TicketRequest{}, domain.ForbiddenError{}
	}
	if err := s.Tickets.Confirm(requestID); err != nil {
		return models.TicketRequest{}, err
	}
	ticket, err := s.Tickets.GetByID(requestID)
	if err != nil {
		return models.TicketRequest{}, err
	}
	s.Audit.Log(p.Email, "CONFIRM_TICKET_REQUEST", fmt.Sprintf("RequestId=%d", requestID))
	return ticket, nil
}

// Mine lists the caller's own requests in insertion order.
func (s TicketService) Mine(p domain.Principal) ([]models.TicketRequest, error) {
	return s.Tickets.ListByCustomer(p.ID)
}

// ByStatus lists requests in the given lifecycle state; staff only.
func (s TicketService) ByStatus(p domain.Principal, status models.TicketStatus) ([]models.TicketRequest, error) {
	if !p.IsStaff() {
		return nil, domain.ForbiddenError{}
	}
	return s.Tickets.ListByStatus(status)
}

// ByTravelDate lists requests travelling on the given date; staff only.
func (s TicketService) ByTravelDate(p domain.Principal, date string) ([]models.TicketRequest, error) {
	if !p.IsStaff() {
		return nil, domain.ForbiddenError{}
	}
	d, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}
	return s.Tickets.ListByTravelDate(utils.FormatDate(d))
}

// Get returns one request. Customers only see their own; a foreign id looks
// the same as a missing one so existence is not leaked.
func (s TicketService) Get(p domain.Principal, requestID int64) (models.TicketRequest, error) {
	ticket, err := s.Tickets.GetByID(requestID)
	if err != nil {
		return models.TicketRequest{}, err
	}
	if !p.IsStaff() && ticket.CustomerID != p.ID {
		return models.TicketRequest{}, domain.NotFoundError{Resource: "ticket request"}
	}
	return ticket, nil
}
