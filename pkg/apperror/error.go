package apperror

import "net/http"

type AppError struct {
	Code      int      `json:"code"`
	Message   string   `json:"message"`
	Details   []string `json:"errors,omitempty"`
	Retryable bool     `json:"retryable,omitempty"`
	Err       error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Validation is a 400 carrying one message per failed rule.
func Validation(details []string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Details: details,
	}
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func TooManyRequests(message string) *AppError {
	return Retryable(New(http.StatusTooManyRequests, message, nil))
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// Unavailable is a 500 the client may retry.
func Unavailable(message string, err error) *AppError {
	return Retryable(New(http.StatusInternalServerError, message, err))
}

// Retryable marks e as safe to retry and returns it.
func Retryable(e *AppError) *AppError {
	e.Retryable = true
	return e
}
