package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/http/middleware"
)

// RespondDomainError maps domain errors to HTTP responses: 400 validation,
// 404 not found, 409 invalid state, 403 forbidden, 500 otherwise.
func RespondDomainError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	message := "something went wrong"

	switch {
	case domain.IsValidation(err):
		status, code, message = http.StatusBadRequest, "validation_error", err.Error()
	case domain.IsNotFound(err):
		status, code, message = http.StatusNotFound, "not_found", err.Error()
	case domain.IsInvalidState(err):
		status, code, message = http.StatusConflict, "invalid_state", err.Error()
	case domain.IsForbidden(err):
		status, code, message = http.StatusForbidden, "forbidden", err.Error()
	}

	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}
