package models

import "strings"

type TicketStatus string

const (
	StatusPending       TicketStatus = "PENDING"
	StatusApproved      TicketStatus = "APPROVED"
	StatusTicketCreated TicketStatus = "TICKET_CREATED"
	StatusConfirmed     TicketStatus = "CONFIRMED"
)

func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusTicketCreated:
		return StatusTicketCreated, true
	case StatusConfirmed:
		return StatusConfirmed, true
	default:
		return "", false
	}
}

// TicketAction names a lifecycle transition performed by staff.
type TicketAction string

const (
	ActionApprove      TicketAction = "approve"
	ActionCreateTicket TicketAction = "create_ticket"
	ActionConfirm      TicketAction = "confirm"
)

// transitionTable is the authoritative state machine: for each action, the
// only source state it may fire from, and the state it produces. There are
// no backward transitions and CONFIRMED is terminal.
var transitionTable = map[TicketAction]struct {
	From TicketStatus
	To   TicketStatus
}{
	ActionApprove:      {From: StatusPending, To: StatusApproved},
	ActionCreateTicket: {From: StatusApproved, To: StatusTicketCreated},
	ActionConfirm:      {From: StatusTicketCreated, To: StatusConfirmed},
}

// Transition returns the required source state and resulting state for an
// action. ok is false for unknown actions.
func Transition(action TicketAction) (from, to TicketStatus, ok bool) {
	t, ok := transitionTable[action]
	return t.From, t.To, ok
}

type BookingType string

const (
	BookingTrain  BookingType = "TRAIN"
	BookingFlight BookingType = "FLIGHT"
	BookingHotel  BookingType = "HOTEL"
)

func ParseBookingType(s string) (BookingType, bool) {
	switch BookingType(strings.ToUpper(strings.TrimSpace(s))) {
	case BookingTrain:
		return BookingTrain, true
	case BookingFlight:
		return BookingFlight, true
	case BookingHotel:
		return BookingHotel, true
	default:
		return "", false
	}
}

type TravelClass string

const (
	// Train classes.
	ClassSleeper       TravelClass = "SLEEPER"
	ClassThreeA        TravelClass = "THREE_A"
	ClassTwoA          TravelClass = "TWO_A"
	ClassOneA          TravelClass = "ONE_A"
	ClassChairCar      TravelClass = "CHAIR_CAR"
	ClassSecondSitting TravelClass = "SECOND_SITTING"

	// Flight cabins.
	ClassEconomy        TravelClass = "ECONOMY"
	ClassPremiumEconomy TravelClass = "PREMIUM_ECONOMY"
	ClassBusiness       TravelClass = "BUSINESS"
	ClassFirst          TravelClass = "FIRST"

	// Hotel room categories.
	ClassStandard TravelClass = "STANDARD"
	ClassDeluxe   TravelClass = "DELUXE"
	ClassSuite    TravelClass = "SUITE"
)

// bookingTypeSpec carries the per-type rules: which travel classes are legal
// and whether a return date is required. This is the tagged-union view of a
// booking request: one status/payment sub-structure shared by all types,
// type-specific fields constrained here.
type bookingTypeSpec struct {
	Classes       []TravelClass
	ReturnDateReq bool
}

var bookingTypes = map[BookingType]bookingTypeSpec{
	BookingTrain: {
		Classes: []TravelClass{ClassSleeper, ClassThreeA, ClassTwoA, ClassOneA, ClassChairCar, ClassSecondSitting},
	},
	BookingFlight: {
		Classes: []TravelClass{ClassEconomy, ClassPremiumEconomy, ClassBusiness, ClassFirst},
	},
	BookingHotel: {
		Classes:       []TravelClass{ClassStandard, ClassDeluxe, ClassSuite},
		ReturnDateReq: true,
	},
}

// ValidClass reports whether class is in the travel-class domain of the
// given booking type.
func ValidClass(bt BookingType, class TravelClass) bool {
	spec, ok := bookingTypes[bt]
	if !ok {
		return false
	}
	for _, c := range spec.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// ReturnDateRequired reports whether the booking type mandates a return
// date (hotel stays need a check-out date; train and flight return legs are
// optional).
func ReturnDateRequired(bt BookingType) bool {
	return bookingTypes[bt].ReturnDateReq
}

// TicketRequest is the customer-submitted travel request tracked through
// its lifecycle. Rows are never deleted; they form the audit trail.
type TicketRequest struct {
	ID                  int64        `json:"id"`
	CustomerID          int64        `json:"customerId"`
	BookingType         BookingType  `json:"bookingType"`
	Origin              string       `json:"origin"`
	Destination         string       `json:"destination"`
	TravelDate          string       `json:"travelDate"`
	ReturnDate          string       `json:"returnDate,omitempty"`
	TravelClass         TravelClass  `json:"travelClass"`
	PassengerCount      int          `json:"passengerCount"`
	SpecialRequirements string       `json:"specialRequirements,omitempty"`
	Status              TicketStatus `json:"status"`
	ApprovedTicketCount int          `json:"approvedTicketCount,omitempty"`
	AssignedPnr         string       `json:"assignedPnr,omitempty"`
	PaymentAmount       float64      `json:"paymentAmount,omitempty"`
	CreatedAt           string       `json:"createdAt,omitempty"`
	UpdatedAt           string       `json:"updatedAt,omitempty"`
}
