package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

func countFor(c *gin.Context, status models.TicketStatus, out *int) bool {
	n, err := (repositories.TicketRepository{}).CountByStatus(status)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	*out = n
	return true
}

// GET /api/dashboard/admin
func AdminDashboard(c *gin.Context) {
	var pending, approved, confirmed int
	if !countFor(c, models.StatusPending, &pending) ||
		!countFor(c, models.StatusApproved, &approved) ||
		!countFor(c, models.StatusConfirmed, &confirmed) {
		return
	}
	revenue, err := repositories.PaymentRepository{}.TotalRevenue()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	customers, err := repositories.UserRepository{}.CountByRole(string(domain.RoleCustomer))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pendingRequests":     pending,
		"approvedRequests":    approved,
		"confirmedTickets":    confirmed,
		"totalRevenue":        revenue,
		"registeredCustomers": customers,
	})
}

// GET /api/dashboard/employee
func EmployeeDashboard(c *gin.Context) {
	var pending, approved int
	if !countFor(c, models.StatusPending, &pending) ||
		!countFor(c, models.StatusApproved, &approved) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pendingRequests":  pending,
		"approvedRequests": approved,
	})
}
