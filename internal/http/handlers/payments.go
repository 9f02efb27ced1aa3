package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/http/middleware"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/services"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Payments: repositories.PaymentRepository{},
		Tickets:  repositories.TicketRepository{},
		Audit: services.AuditService{
			Repo:      repositories.AuditRepository{},
			RequestID: middleware.GetRequestID(c),
		},
	}
}

// POST /api/payments/ticket/:id/make-payment
func MakePayment(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	ticketID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var in services.RecordPaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	payment, err := paymentService(c).Record(p, ticketID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// POST /api/payments/:id/update-status?status=COMPLETED|FAILED
func UpdatePaymentStatus(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	paymentID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	payment, err := paymentService(c).UpdateStatus(p, paymentID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GET /api/payments/my
func MyPayments(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	payments, err := paymentService(c).Mine(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /api/payments/all
func AllPayments(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	payments, err := paymentService(c).All(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /api/payments/ticket/:id
func PaymentsByTicket(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	ticketID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	payments, err := paymentService(c).ByTicket(p, ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
