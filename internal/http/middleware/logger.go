package middleware

import (
	"log"
	"time"

	"marketplace/internal/auth"

	"github.com/gin-gonic/gin"
)

// Logger prints a minimal request log line with request_id and, once the
// auth guard has run, the principal's role. Unauthenticated traffic logs "-".
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		role := "-"
		if p, ok := auth.GetPrincipal(c); ok {
			role = p.Role
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d role=%s latency_ms=%.3f ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			role,
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}
