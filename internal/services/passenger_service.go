package services

import (
	"fmt"
	"regexp"
	"strings"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

var nameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*$`)

// PassengerService attaches passenger records to a booking request and
// lists them. Records are immutable once written.
type PassengerService struct {
	Passengers repositories.PassengerRepository
	Tickets    repositories.TicketRepository
	Audit      AuditService
}

type PassengerInput struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	IDProofType    string `json:"idProofType"`
	IDProofNumber  string `json:"idProofNumber"`
	SeatPreference string `json:"seatPreference"`
}

func validatePassenger(i int, in PassengerInput) (models.Passenger, error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" || !nameRe.MatchString(name) {
		return models.Passenger{}, domain.ValidationError{
			Field: fmt.Sprintf("passengers[%d].name", i),
			Msg:   "letters and spaces only",
		}
	}
	if in.Age < 1 || in.Age > 120 {
		return models.Passenger{}, domain.ValidationError{
			Field: fmt.Sprintf("passengers[%d].age", i),
			Msg:   "must be between 1 and 120",
		}
	}
	gender, ok := models.ParseGender(in.Gender)
	if !ok {
		return models.Passenger{}, domain.ValidationError{
			Field: fmt.Sprintf("passengers[%d].gender", i),
			Msg:   "must be Male, Female or Other",
		}
	}
	seat, ok := models.ParseSeatPreference(in.SeatPreference)
	if !ok {
		return models.Passenger{}, domain.ValidationError{
			Field: fmt.Sprintf("passengers[%d].seatPreference", i),
			Msg:   "unknown seat preference",
		}
	}
	return models.Passenger{
		Name:           name,
		Age:            in.Age,
		Gender:         gender,
		IDProofType:    strings.TrimSpace(in.IDProofType),
		IDProofNumber:  strings.TrimSpace(in.IDProofNumber),
		SeatPreference: seat,
	}, nil
}

// AttachBatch validates every passenger first, then inserts the batch in one
// transaction: it fully succeeds or leaves the store untouched.
func (s PassengerService) AttachBatch(p domain.Principal, ticketID int64, inputs []PassengerInput) ([]models.Passenger, error) {
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff() && ticket.CustomerID != p.ID {
		return nil, domain.NotFoundError{Resource: "ticket request"}
	}
	if len(inputs) == 0 {
		return nil, domain.ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}

	batch := make([]models.Passenger, 0, len(inputs))
	for i, in := range inputs {
		passenger, err := validatePassenger(i, in)
		if err != nil {
			return nil, err
		}
		passenger.TicketRequestID = ticketID
		batch = append(batch, passenger)
	}

	if err := s.Passengers.CreateBatch(ticketID, batch); err != nil {
		return nil, err
	}
	s.Audit.Log(p.Email, "ATTACH_PASSENGERS", fmt.Sprintf("RequestId=%d, count=%d", ticketID, len(batch)))

	return s.Passengers.ListByTicket(ticketID)
}

// List returns all passengers of a ticket. Customers only see their own
// tickets' passengers.
func (s PassengerService) List(p domain.Principal, ticketID int64) ([]models.Passenger, error) {
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff() && ticket.CustomerID != p.ID {
		return nil, domain.NotFoundError{Resource: "ticket request"}
	}
	return s.Passengers.ListByTicket(ticketID)
}
