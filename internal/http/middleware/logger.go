package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one access line per request with request and session ids.
// Form bodies are never logged since the delete form carries the password.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		sid := GetSessionID(c)
		if len(sid) > 8 {
			sid = sid[:8]
		}

		log.Printf("[HTTP] request_id=%s session=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			sid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}
