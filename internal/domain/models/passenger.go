package models

import "strings"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale, true
	case "female":
		return GenderFemale, true
	case "other":
		return GenderOther, true
	default:
		return "", false
	}
}

type SeatPreference string

const (
	SeatUpper     SeatPreference = "UPPER"
	SeatMiddle    SeatPreference = "MIDDLE"
	SeatLower     SeatPreference = "LOWER"
	SeatSideUpper SeatPreference = "SIDE_UPPER"
	SeatSideLower SeatPreference = "SIDE_LOWER"
	SeatNone      SeatPreference = "NONE"
)

func ParseSeatPreference(s string) (SeatPreference, bool) {
	switch SeatPreference(strings.ToUpper(strings.TrimSpace(s))) {
	case SeatUpper:
		return SeatUpper, true
	case SeatMiddle:
		return SeatMiddle, true
	case SeatLower:
		return SeatLower, true
	case SeatSideUpper:
		return SeatSideUpper, true
	case SeatSideLower:
		return SeatSideLower, true
	case SeatNone, "":
		return SeatNone, true
	default:
		return "", false
	}
}

// Passenger is exclusively owned by one ticket request and immutable after
// the batch that created it.
type Passenger struct {
	ID              int64          `json:"id"`
	TicketRequestID int64          `json:"ticketId"`
	Name            string         `json:"name"`
	Age             int            `json:"age"`
	Gender          Gender         `json:"gender"`
	IDProofType     string         `json:"idProofType,omitempty"`
	IDProofNumber   string         `json:"idProofNumber,omitempty"`
	SeatPreference  SeatPreference `json:"seatPreference,omitempty"`
	CreatedAt       string         `json:"createdAt,omitempty"`
}
