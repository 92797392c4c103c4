// Package middleware contains the gin middleware shared by every route:
// correlation ids, client identity, access logging with redaction, panic
// recovery, Prometheus metrics, rate limiting, idempotency keys and security
// headers.
package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"

	// HeaderClientID lets a browser client keep a stable identity across
	// requests without authentication.
	HeaderClientID = "X-Client-ID"
	maxClientIDLen = 128

	loggerKey = "logger"
)

// RequestID reuses the caller's X-Request-ID or generates a UUID, echoes it
// on the response and stores it in the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid == "" || len(rid) > 128 {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the correlation id set by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// ClientID identifies the caller for rate limiting and idempotency:
// "client:<X-Client-ID>" when the header is present, else "ip:<addr>".
func ClientID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(HeaderClientID)); id != "" && len(id) <= maxClientIDLen {
		return "client:" + id
	}
	return "ip:" + c.ClientIP()
}

// Recovery turns a panic into a JSON 500 carrying the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := GetRequestID(c)
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger attached by AccessLog, or the
// global logger when none is attached.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}
