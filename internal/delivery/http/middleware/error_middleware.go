package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"solar-quote-backend/internal/delivery/http/response"
	"solar-quote-backend/pkg/apperror"
	"solar-quote-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	msgUnexpectedError = "An error occurred while processing your request. Please try again later."
	msgPanic           = "An unknown error occurred. Please try again later."
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.ErrorContext(c.Request.Context(), appErr.Message,
					"error", appErr.Err.Error(),
					"path", c.FullPath(),
					"request_id", c.GetString("RequestID"),
				)
			}
			response.Failure(c, appErr.Code, appErr.Message, appErr.Details, appErr.Retryable)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.ErrorContext(c.Request.Context(), "Unhandled request error",
			"error", err.Error(),
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)
		response.Failure(c, http.StatusInternalServerError, msgUnexpectedError, nil, true)
	}
}

// Recovery turns a panic into the generic retryable 500 and logs the stack.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Log.ErrorContext(c.Request.Context(), "Unhandled panic",
			"panic", fmt.Sprint(recovered),
			"stack", string(debug.Stack()),
			"path", c.Request.URL.Path,
			"request_id", c.GetString("RequestID"),
		)
		response.Failure(c, http.StatusInternalServerError, msgPanic, nil, true)
		c.Abort()
	})
}
