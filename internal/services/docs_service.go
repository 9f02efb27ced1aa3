package services

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// DocsService renders per-passenger e-ticket and invoice PDFs. Documents
// exist only once a PNR has been assigned.
type DocsService struct {
	Passengers repositories.PassengerRepository
	Tickets    repositories.TicketRepository
	RequestID  string
}

type passengerDocData struct {
	Passenger models.Passenger
	Ticket    models.TicketRequest
}

func (s DocsService) load(p domain.Principal, passengerID int64) (passengerDocData, error) {
	passenger, err := s.Passengers.GetByID(passengerID)
	if err != nil {
		return passengerDocData{}, err
	}
	ticket, err := s.Tickets.GetByID(passenger.TicketRequestID)
	if err != nil {
		return passengerDocData{}, err
	}
	if !p.IsStaff() && ticket.CustomerID != p.ID {
		return passengerDocData{}, domain.NotFoundError{Resource: "passenger"}
	}
	if ticket.AssignedPnr == "" {
		return passengerDocData{}, domain.InvalidStateError{Resource: "ticket request", Msg: "no ticket issued yet"}
	}
	return passengerDocData{Passenger: passenger, Ticket: ticket}, nil
}

func (s DocsService) GenerateETicket(p domain.Principal, passengerID int64) ([]byte, string, error) {
	data, err := s.load(p, passengerID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("passenger_id=%d", passengerID))
	return buildETicketPDF(data)
}

func (s DocsService) GenerateInvoice(p domain.Principal, passengerID int64) ([]byte, string, error) {
	data, err := s.load(p, passengerID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("passenger_id=%d", passengerID))
	return buildInvoicePDF(data)
}

// addPnrQR draws a QR code of the PNR in the top-right corner.
func addPnrQR(pdf *gofpdf.Fpdf, pnr string) {
	qr, err := qrcode.New(pnr, qrcode.Medium)
	if err != nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("pnr-qr", opts, &buf)
	pdf.ImageOptions("pnr-qr", 165, 10, 32, 32, false, opts, 0, "")
}

func safeLine(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func buildETicketPDF(d passengerDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	addPnrQR(pdf, d.Ticket.AssignedPnr)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR            : %s", d.Ticket.AssignedPnr),
		fmt.Sprintf("Passenger      : %s", safeLine(d.Passenger.Name, "-")),
		fmt.Sprintf("Age / Gender   : %d / %s", d.Passenger.Age, d.Passenger.Gender),
		fmt.Sprintf("Booking        : %s (%s)", d.Ticket.BookingType, d.Ticket.TravelClass),
		fmt.Sprintf("Route          : %s -> %s", d.Ticket.Origin, d.Ticket.Destination),
		fmt.Sprintf("Travel date    : %s", d.Ticket.TravelDate),
	}
	if d.Ticket.ReturnDate != "" {
		lines = append(lines, fmt.Sprintf("Return date    : %s", d.Ticket.ReturnDate))
	}
	if d.Passenger.SeatPreference != models.SeatNone {
		lines = append(lines, fmt.Sprintf("Seat preference: %s", d.Passenger.SeatPreference))
	}
	lines = append(lines, fmt.Sprintf("Request        : #%d", d.Ticket.ID))
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger. Carry the ID proof given at booking time.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	filename := fmt.Sprintf("ETICKET_%s_%d.pdf", d.Ticket.AssignedPnr, d.Passenger.ID)
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d passengerDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	addPnrQR(pdf, d.Ticket.AssignedPnr)
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%d", d.Ticket.ID, d.Passenger.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name : %s", safeLine(d.Passenger.Name, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("%s ticket %s -> %s on %s, class %s, PNR %s",
		d.Ticket.BookingType, d.Ticket.Origin, d.Ticket.Destination,
		d.Ticket.TravelDate, d.Ticket.TravelClass, d.Ticket.AssignedPnr,
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupee(d.Ticket.PaymentAmount))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	filename := fmt.Sprintf("INVOICE_%s_%d.pdf", d.Ticket.AssignedPnr, d.Passenger.ID)
	return buf.Bytes(), filename, nil
}
