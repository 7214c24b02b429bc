package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidToken   = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
	ErrTokenExpired   = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
)

// Cart ledger errors
var (
	ErrInvalidItem     = &AppError{Code: http.StatusBadRequest, Message: "Item identifier is required"}
	ErrItemNotFound    = &AppError{Code: http.StatusNotFound, Message: "Item not found in cart"}
	ErrInvalidQuantity = &AppError{Code: http.StatusUnprocessableEntity, Message: "Quantity must be a positive whole number"}
)

// Submission precondition errors
var (
	ErrMissingCustomer = &AppError{Code: http.StatusUnprocessableEntity, Message: "Customer is required"}
	ErrMissingTable    = &AppError{Code: http.StatusUnprocessableEntity, Message: "Table is required for dine-in orders"}
	ErrEmptyCart       = &AppError{Code: http.StatusUnprocessableEntity, Message: "Cart is empty"}
)

// Payment errors
var (
	ErrUnpayable        = &AppError{Code: http.StatusUnprocessableEntity, Message: "No payment amounts entered"}
	ErrNoOpenPayment    = &AppError{Code: http.StatusConflict, Message: "No open payment session"}
	ErrNoOpenShift      = &AppError{Code: http.StatusConflict, Message: "No open shift"}
	ErrShiftAlreadyOpen = &AppError{Code: http.StatusConflict, Message: "A shift is already open for this terminal"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewRemoteFailureError wraps a failure envelope returned by the posting
// backend. The backend's message and details are surfaced verbatim.
func NewRemoteFailureError(message, details string) *AppError {
	if message == "" {
		message = "Remote submission failed"
	}
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
		Details: details,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
