package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/http/middleware"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/services"
)

func auditLogger(c *gin.Context) services.AuditService {
	return services.AuditService{
		Repo:      repositories.AuditRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/admin/employees
func ListEmployees(c *gin.Context) {
	staff, err := repositories.UserRepository{}.ListStaff()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

type createEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// POST /api/admin/employees
func CreateEmployee(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	var req createEmployeeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	role := domain.RoleEmployee
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok || parsed == domain.RoleCustomer {
			RespondError(c, http.StatusBadRequest, "role must be EMPLOYEE or ADMIN", nil)
			return
		}
		role = parsed
	}

	repo := repositories.UserRepository{}
	exists, err := repo.ExistsByEmailOrPhone(req.Email, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondError(c, http.StatusBadRequest, "user already exists with provided details", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         string(role),
		Active:       true,
	}
	id, err := repo.Create(user)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	user.ID = id
	auditLogger(c).Log(p.Email, "CREATE_EMPLOYEE", fmt.Sprintf("user_id=%d role=%s", id, role))
	c.JSON(http.StatusCreated, user)
}

type statusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// PUT /api/admin/employees/:id/status
func SetEmployeeStatus(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if id == p.ID && !*req.Active {
		RespondError(c, http.StatusBadRequest, "cannot deactivate your own account", nil)
		return
	}
	if err := (repositories.UserRepository{}).UpdateActive(id, *req.Active); err != nil {
		RespondDomainError(c, err)
		return
	}
	auditLogger(c).Log(p.Email, "UPDATE_EMPLOYEE_STATUS", fmt.Sprintf("user_id=%d active=%t", id, *req.Active))
	c.JSON(http.StatusOK, gin.H{"id": id, "active": *req.Active})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// PUT /api/admin/employees/:id/reset-password
func ResetEmployeePassword(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	var req resetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}
	if err := (repositories.UserRepository{}).UpdatePassword(id, string(hash)); err != nil {
		RespondDomainError(c, err)
		return
	}
	auditLogger(c).Log(p.Email, "RESET_EMPLOYEE_PASSWORD", fmt.Sprintf("user_id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "password updated"})
}

// DELETE /api/admin/employees/:id
func DeleteEmployee(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	if id == p.ID {
		RespondError(c, http.StatusBadRequest, "cannot delete your own account", nil)
		return
	}
	if err := (repositories.UserRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	auditLogger(c).Log(p.Email, "DELETE_EMPLOYEE", fmt.Sprintf("user_id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "deleted"})
}

// GET /api/admin/customers
func ListCustomers(c *gin.Context) {
	customers, err := repositories.UserRepository{}.ListCustomers()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// POST /api/admin/customers/:id/activate
func ActivateCustomer(c *gin.Context) {
	p, ok := PrincipalOrError(c)
	if !ok {
		return
	}
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}
	if err := (repositories.UserRepository{}).UpdateActive(id, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	auditLogger(c).Log(p.Email, "ACTIVATE_CUSTOMER", fmt.Sprintf("user_id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "active": true})
}

// GET /api/admin/audit-logs?limit=N
func ListAuditLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &limit); err != nil || limit <= 0 {
			RespondError(c, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
	}
	logs, err := repositories.AuditRepository{}.ListRecent(limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
