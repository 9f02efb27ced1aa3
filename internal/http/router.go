package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	h "yatrasathi/internal/http/handlers"
	"yatrasathi/internal/http/middleware"
)

func NewRouter(env intconfig.Env, rdb *redis.Client) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	staff := middleware.RequireRoles(string(domain.RoleEmployee), string(domain.RoleAdmin))
	adminOnly := middleware.RequireRoles(string(domain.RoleAdmin))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", middleware.LoginRateLimit(rdb, 10, time.Minute), h.Login)
		auth.POST("/signup", h.Signup)

		// Everything below requires a valid token.
		authed := api.Group("")
		authed.Use(middleware.JWTAuth(env.JWTSecret))

		// Ticket requests
		tickets := authed.Group("/tickets")
		tickets.POST("", h.SubmitTicket)
		tickets.GET("/my", h.MyTickets)
		tickets.GET("/pending", staff, h.PendingTickets)
		tickets.GET("/approved", staff, h.ApprovedTickets)
		tickets.GET("/ticket-created", staff, h.TicketCreatedTickets)
		tickets.GET("/confirmed", staff, h.ConfirmedTickets)
		tickets.GET("/by-date", staff, h.TicketsByDate)
		tickets.GET("/:id", h.GetTicket)
		tickets.POST("/:id/approve", staff, h.ApproveTicket)
		tickets.POST("/:id/create-ticket", staff, h.CreateTicket)
		tickets.POST("/:id/confirm", staff, h.ConfirmTicket)

		// Passengers & documents
		passengers := authed.Group("/passengers")
		passengers.POST("/ticket/:id/batch", h.AttachPassengers)
		passengers.GET("/ticket/:id", h.ListPassengers)
		passengers.GET("/:id/e-ticket", h.DownloadETicket)
		passengers.GET("/:id/invoice", h.DownloadInvoice)

		// Payment ledger
		payments := authed.Group("/payments")
		payments.POST("/ticket/:id/make-payment", h.MakePayment)
		payments.GET("/ticket/:id", h.PaymentsByTicket)
		payments.POST("/:id/update-status", staff, h.UpdatePaymentStatus)
		payments.GET("/my", h.MyPayments)
		payments.GET("/all", staff, h.AllPayments)

		// Staff dashboards
		dashboard := authed.Group("/dashboard")
		dashboard.GET("/employee", staff, h.EmployeeDashboard)
		dashboard.GET("/admin", adminOnly, h.AdminDashboard)

		// Admin console
		admin := authed.Group("/admin")
		admin.Use(adminOnly)
		admin.GET("/employees", h.ListEmployees)
		admin.POST("/employees", h.CreateEmployee)
		admin.PUT("/employees/:id/status", h.SetEmployeeStatus)
		admin.PUT("/employees/:id/reset-password", h.ResetEmployeePassword)
		admin.DELETE("/employees/:id", h.DeleteEmployee)
		admin.GET("/customers", h.ListCustomers)
		admin.POST("/customers/:id/activate", h.ActivateCustomer)
		admin.GET("/audit-logs", h.ListAuditLogs)
		admin.GET("/export/tickets.csv", h.ExportTicketsCSV)
		admin.GET("/export/payments.csv", h.ExportPaymentsCSV)
	}

	return r
}
