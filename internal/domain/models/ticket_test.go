package models

import "testing"

func TestTransitionChain(t *testing.T) {
	cases := []struct {
		action TicketAction
		from   TicketStatus
		to     TicketStatus
	}{
		{ActionApprove, StatusPending, StatusApproved},
		{ActionCreateTicket, StatusApproved, StatusTicketCreated},
		{ActionConfirm, StatusTicketCreated, StatusConfirmed},
	}
	for _, c := range cases {
		from, to, ok := Transition(c.action)
		if !ok {
			t.Fatalf("action %s not in transition table", c.action)
		}
		if from != c.from || to != c.to {
			t.Fatalf("action %s: got %s->%s want %s->%s", c.action, from, to, c.from, c.to)
		}
	}
}

func TestTransitionUnknownAction(t *testing.T) {
	if _, _, ok := Transition(TicketAction("reject")); ok {
		t.Fatalf("unknown action should not resolve")
	}
}

func TestConfirmedIsTerminal(t *testing.T) {
	for action := range transitionTable {
		from, _, _ := Transition(action)
		if from == StatusConfirmed {
			t.Fatalf("no action may leave CONFIRMED, found %s", action)
		}
	}
}

func TestClassDomainsPerBookingType(t *testing.T) {
	valid := []struct {
		bt    BookingType
		class TravelClass
	}{
		{BookingTrain, ClassSleeper},
		{BookingTrain, ClassChairCar},
		{BookingFlight, ClassEconomy},
		{BookingFlight, ClassFirst},
		{BookingHotel, ClassSuite},
	}
	for _, c := range valid {
		if !ValidClass(c.bt, c.class) {
			t.Fatalf("%s should be valid for %s", c.class, c.bt)
		}
	}

	invalid := []struct {
		bt    BookingType
		class TravelClass
	}{
		{BookingTrain, ClassEconomy},
		{BookingFlight, ClassSleeper},
		{BookingHotel, ClassBusiness},
		{BookingHotel, ClassTwoA},
	}
	for _, c := range invalid {
		if ValidClass(c.bt, c.class) {
			t.Fatalf("%s must not be valid for %s", c.class, c.bt)
		}
	}
}

func TestReturnDateRequiredOnlyForHotel(t *testing.T) {
	if !ReturnDateRequired(BookingHotel) {
		t.Fatalf("hotel bookings need a checkout date")
	}
	if ReturnDateRequired(BookingTrain) || ReturnDateRequired(BookingFlight) {
		t.Fatalf("train and flight return dates are optional")
	}
}

func TestParseBookingTypeNormalizes(t *testing.T) {
	bt, ok := ParseBookingType(" flight ")
	if !ok || bt != BookingFlight {
		t.Fatalf("got %q ok=%t", bt, ok)
	}
	if _, ok := ParseBookingType("BUS"); ok {
		t.Fatalf("BUS is not a booking type")
	}
}
