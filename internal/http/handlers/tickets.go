package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/http/middleware"
	"yatrasathi/internal/queue"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/services"
	"yatrasathi/internal/utils"
)

func ticketService(c *gin.Context) services.TicketService {
	requestID := middleware.GetRequestID(c)
	return services.TicketService{
		Tickets:  repositories.TicketRepository{},
		Payments: repositories.PaymentRepository{},
		Audit: services.AuditService{
			Repo:      repositories.AuditRepository{},
			RequestID: requestID,
		},
		FarePerTicket: env.FarePerTicket,
	}
}

// POST /api/tickets
func SubmitTicket(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	var in services.SubmitTicketInput
	if !BindJSONOrError(c, &in) {
		return
	}
	ticket, err := ticketService(c).Submit(p, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": ticket.ID, "ticket": ticket})
}

// GET /api/tickets/my
func MyTickets(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	tickets, err := ticketService(c).Mine(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func ticketsByStatus(c *gin.Context, status models.TicketStatus) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	tickets, err := ticketService(c).ByStatus(p, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GET /api/tickets/pending
func PendingTickets(c *gin.Context) { ticketsByStatus(c, models.StatusPending) }

// GET /api/tickets/approved
func ApprovedTickets(c *gin.Context) { ticketsByStatus(c, models.StatusApproved) }

// GET /api/tickets/ticket-created
func TicketCreatedTickets(c *gin.Context) { ticketsByStatus(c, models.StatusTicketCreated) }

// GET /api/tickets/confirmed
func ConfirmedTickets(c *gin.Context) { ticketsByStatus(c, models.StatusConfirmed) }

// GET /api/tickets/by-date?date=YYYY-MM-DD
func TicketsByDate(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	tickets, err := ticketService(c).ByTravelDate(p, c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GET /api/tickets/:id
func GetTicket(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	ticket, err := ticketService(c).Get(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// POST /api/tickets/:id/approve?count=N
func ApproveTicket(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	count, err := strconv.Atoi(c.Query("count"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "count must be an integer", err)
		return
	}
	ticket, suggested, err := ticketService(c).Approve(p, id, count)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "suggestedAmount": suggested})
}

// POST /api/tickets/:id/create-ticket?pnr=X&paymentAmount=Y
func CreateTicket(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	pnr := strings.TrimSpace(c.Query("pnr"))
	amount, err := strconv.ParseFloat(c.Query("paymentAmount"), 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "paymentAmount must be a number", err)
		return
	}
	ticket, err := ticketService(c).CreateTicket(p, id, pnr, amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// POST /api/tickets/:id/confirm
func ConfirmTicket(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(c)
	ticket, err := ticketService(c).Confirm(p, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	notifyConfirmed(requestID, ticket)
	c.JSON(http.StatusOK, ticket)
}

// notifyConfirmed fans the confirmation out to the broker and the customer's
// mailbox. Both paths are best effort; a delivery failure never rolls the
// state change back.
func notifyConfirmed(requestID string, ticket models.TicketRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		event := queue.TicketConfirmedEvent{
			TicketID:    ticket.ID,
			CustomerID:  ticket.CustomerID,
			PNR:         ticket.AssignedPnr,
			BookingType: string(ticket.BookingType),
			Origin:      ticket.Origin,
			Destination: ticket.Destination,
			TravelDate:  ticket.TravelDate,
			Amount:      ticket.PaymentAmount,
			ConfirmedAt: utils.FormatDateTime(time.Now()),
		}
		if err := queue.PublishTicketConfirmed(ctx, env.AmqpURL, event); err != nil {
			utils.LogEvent(requestID, "tickets", "confirm", "publish failed: "+err.Error())
		}
	}()

	customer, err := repositories.UserRepository{}.GetByID(ticket.CustomerID)
	if err != nil {
		utils.LogEvent(requestID, "tickets", "confirm", "customer lookup for mail failed: "+err.Error())
		return
	}
	utils.SendTicketConfirmationEmail(smtpConfig(), customer.Email, utils.TicketConfirmationData{
		CustomerName: customer.Name,
		PNR:          ticket.AssignedPnr,
		Origin:       ticket.Origin,
		Destination:  ticket.Destination,
		TravelDate:   ticket.TravelDate,
		Amount:       utils.FormatRupee(ticket.PaymentAmount),
	})
}

func smtpConfig() utils.SMTPConfig {
	return utils.SMTPConfig{
		Host: env.SMTPHost,
		Port: env.SMTPPort,
		User: env.SMTPUser,
		Pass: env.SMTPPass,
		From: env.SMTPFrom,
	}
}
