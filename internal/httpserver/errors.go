package httpserver

import (
	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{StatusCode: status, Message: message})
}

func writeFieldErrors(c *gin.Context, status int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, errorResponse{StatusCode: status, Message: message, Errors: fields})
}
