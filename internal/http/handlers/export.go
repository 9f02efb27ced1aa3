package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

func serveCSV(c *gin.Context, filename string, header []string, rows [][]string) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build export", err)
		return
	}
	if err := w.WriteAll(rows); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build export", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// GET /api/admin/export/tickets.csv
func ExportTicketsCSV(c *gin.Context) {
	tickets, err := repositories.TicketRepository{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			strconv.FormatInt(t.CustomerID, 10),
			string(t.BookingType),
			t.Origin,
			t.Destination,
			t.TravelDate,
			t.ReturnDate,
			string(t.TravelClass),
			strconv.Itoa(t.PassengerCount),
			string(t.Status),
			strconv.Itoa(t.ApprovedTicketCount),
			t.AssignedPnr,
			utils.FormatMoney(t.PaymentAmount),
			t.CreatedAt,
		})
	}
	serveCSV(c, "tickets.csv", []string{
		"id", "customer_id", "booking_type", "origin", "destination",
		"travel_date", "return_date", "travel_class", "passenger_count",
		"status", "approved_ticket_count", "assigned_pnr", "payment_amount",
		"created_at",
	}, rows)
}

// GET /api/admin/export/payments.csv
func ExportPaymentsCSV(c *gin.Context) {
	payments, err := repositories.PaymentRepository{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			strconv.FormatInt(p.TicketRequestID, 10),
			strconv.FormatInt(p.UserID, 10),
			utils.FormatMoney(p.Amount),
			string(p.Mode),
			p.Reference,
			string(p.Status),
			p.CreatedAt,
		})
	}
	serveCSV(c, "payments.csv", []string{
		"id", "ticket_id", "user_id", "amount", "mode", "reference",
		"status", "created_at",
	}, rows)
}
