// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketConfirmedEvent is published when a booking request reaches its
// terminal CONFIRMED state. It carries enough for downstream consumers to
// notify or run analytics without querying the primary database.
type TicketConfirmedEvent struct {
	TicketID    int64   `json:"ticket_id"`
	CustomerID  int64   `json:"customer_id"`
	PNR         string  `json:"pnr"`
	BookingType string  `json:"booking_type"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	TravelDate  string  `json:"travel_date"`
	Amount      float64 `json:"amount"`
	ConfirmedAt string  `json:"confirmed_at"`
}
