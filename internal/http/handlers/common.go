package handlers

import (
	"context"
	"net/http"

	"routeadmin/internal/http/middleware"
	"routeadmin/internal/services"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// operationContext detaches backend calls from the browser request so a
// closed tab does not abort a delete half way; the client timeout still applies.
func operationContext(c *gin.Context) context.Context {
	ctx := context.WithoutCancel(c.Request.Context())
	return services.WithRequestID(ctx, middleware.GetRequestID(c))
}
