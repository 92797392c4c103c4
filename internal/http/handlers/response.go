// Package handlers implements the HTTP endpoints of the health assistant.
//
// Versioned routes answer errors with the ErrorResponse envelope through
// fail(). The compatibility endpoint /api/chat keeps its historical
// {"error": "..."} body through legacyError().
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "session not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-health-assistant/internal/http/middleware"
)

// ErrorResponse is the standard error envelope of the versioned API.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"session not found"`
}

// LegacyErrorResponse is the error body of /api/chat.
type LegacyErrorResponse struct {
	Error string `json:"error" example:"Both fields are required"`
}

// fail aborts with an ErrorResponse. 5xx responses are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: middleware.GetRequestID(c),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// legacyError aborts with the {"error": msg} body used by /api/chat.
func legacyError(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().Int("status", status).Str("message", msg).Msg("chat log error")
	}
	c.AbortWithStatusJSON(status, LegacyErrorResponse{Error: msg})
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
