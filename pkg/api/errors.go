package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// abortWithError writes an ErrorResponse and stops the handler chain.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, &ErrorResponse{
		Error:     message,
		RequestID: c.GetString(requestIDKey),
	})
}

// abortWithInternalError logs err and answers 500 without exposing it.
func abortWithInternalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "request_id", c.GetString(requestIDKey))
	abortWithError(c, http.StatusInternalServerError, "internal server error")
}
