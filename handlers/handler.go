package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront-api/audit"
	"storefront-api/catalog"
	"storefront-api/metrics"
	"storefront-api/middleware"
	"storefront-api/session"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	Catalog  *catalog.Repository
	Sessions *session.Registry
	Journal  *audit.Journal     // optional
	Metrics  *metrics.Collector // optional
	OTP      *OTPIssuer

	// StrictTransitions checks status changes against the order lifecycle
	StrictTransitions bool
	// EchoOTP returns issued codes in the response body
	EchoOTP     bool
	AdminPhones []string

	Log *slog.Logger
}

func (h *Handler) session(c *gin.Context) *session.Session {
	return h.Sessions.Get(middleware.GetUserID(c))
}

func (h *Handler) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}

// queryInt parses an optional integer query parameter
func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key + ": must be an integer"})
		return 0, false
	}
	return v, true
}
