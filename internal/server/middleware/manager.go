package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Manager wires all HTTP middlewares with shared dependencies.
type Manager struct {
	debug bool
}

// NewManager builds a middleware manager for the HTTP server.
func NewManager(debug bool) *Manager {
	return &Manager{debug: debug}
}

// RequestID tags every request with a unique ID, echoed in the response
// header and available to handlers via the context.
func (m *Manager) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestLog logs each request line with its ID, status, and latency.
func (m *Manager) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if !m.debug && c.Writer.Status() < 400 {
			return
		}
		log.Printf("%s %s -> %d (%s) id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			c.GetString("request_id"),
		)
	}
}
