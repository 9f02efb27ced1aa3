package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/http/middleware"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/services"
)

func passengerService(c *gin.Context) services.PassengerService {
	return services.PassengerService{
		Passengers: repositories.PassengerRepository{},
		Tickets:    repositories.TicketRepository{},
		Audit: services.AuditService{
			Repo:      repositories.AuditRepository{},
			RequestID: middleware.GetRequestID(c),
		},
	}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Passengers: repositories.PassengerRepository{},
		Tickets:    repositories.TicketRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}

// POST /api/passengers/ticket/:id/batch
func AttachPassengers(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	ticketID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var inputs []services.PassengerInput
	if !BindJSONOrError(c, &inputs) {
		return
	}
	passengers, err := passengerService(c).AttachBatch(p, ticketID, inputs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, passengers)
}

// GET /api/passengers/ticket/:id
func ListPassengers(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	ticketID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	passengers, err := passengerService(c).List(p, ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, passengers)
}

func servePDF(c *gin.Context, pdf []byte, filename string, err error) {
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/passengers/:id/e-ticket
func DownloadETicket(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	passengerID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateETicket(p, passengerID)
	servePDF(c, pdf, filename, err)
}

// GET /api/passengers/:id/invoice
func DownloadInvoice(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	passengerID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateInvoice(p, passengerID)
	servePDF(c, pdf, filename, err)
}
