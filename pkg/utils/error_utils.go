package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DevelopmentModeKey is set on the gin context when error details may be exposed.
const DevelopmentModeKey = "developmentMode"

// APIError is the JSON error envelope returned by every endpoint.
type APIError struct {
	StatusCode int      `json:"-"`
	Code       string   `json:"code,omitempty"` // Application-specific error code
	Message    string   `json:"error"`
	Details    string   `json:"message,omitempty"`
	Required   []string `json:"required,omitempty"`
	Path       string   `json:"path,omitempty"`
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, code string, message string, details string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    details,
	}
}

// WithRequired attaches the list of required fields to the error.
func (e *APIError) WithRequired(fields ...string) *APIError {
	e.Required = fields
	return e
}

// WithPath attaches the requested path to the error.
func (e *APIError) WithPath(path string) *APIError {
	e.Path = path
	return e
}

// RespondWithError sends a standardized JSON error response
func RespondWithError(c *gin.Context, err *APIError) {
	c.JSON(err.StatusCode, err)
	c.Abort()
}

const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeRouteNotFound       = "ROUTE_NOT_FOUND"
	ErrCodeDuplicateEntry      = "DUPLICATE_ENTRY"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeMissingFields       = "MISSING_REQUIRED_FIELDS"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInvalidDueDate      = "INVALID_DUE_DATE"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
)

// RespondValidationFailed is a shortcut for a generic 400.
func RespondValidationFailed(c *gin.Context, details string) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, "Input validation failed", details))
}
