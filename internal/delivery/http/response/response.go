package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
	EmailSent bool        `json:"emailSent,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// EmailSent acknowledges a submission whose notification reached the business.
func EmailSent(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		EmailSent: true,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

// Failure sends an error response with validation details and the retry hint.
func Failure(c *gin.Context, code int, message string, errs []string, retryable bool) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Retryable: retryable,
		RequestID: requestID(c),
	})
}
