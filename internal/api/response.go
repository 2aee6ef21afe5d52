package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// APIError represents an error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Meta carries request scoped metadata
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
}

// Standard error codes
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// RequestID returns the id set by RequestIDMiddleware, or "" outside it.
func RequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if idStr, ok := id.(string); ok {
			return idStr
		}
	}
	return ""
}

// SendSuccess sends a successful response
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	if id := RequestID(c); id != "" {
		response.Meta = &Meta{RequestID: id}
	}
	c.JSON(statusCode, response)
}

// SendError sends an error response
func SendError(c *gin.Context, statusCode int, code, message, details string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	if id := RequestID(c); id != "" {
		response.Meta = &Meta{RequestID: id}
	}
	c.JSON(statusCode, response)
}

func SendValidationError(c *gin.Context, message, details string) {
	SendError(c, http.StatusBadRequest, ErrCodeValidation, message, details)
}

func SendNotFound(c *gin.Context, resource string) {
	SendError(c, http.StatusNotFound, ErrCodeNotFound, resource+" not found", "")
}

func SendBadRequest(c *gin.Context, message, details string) {
	SendError(c, http.StatusBadRequest, ErrCodeBadRequest, message, details)
}

func SendPayloadTooLarge(c *gin.Context, message string) {
	SendError(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, message, "")
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", message)
}
