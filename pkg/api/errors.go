package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeServerError    ErrorType = "server_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeNotFound       ErrorType = "not_found"
)

// Error codes carried in APIError.Code for not_found errors, so callers
// can distinguish the missing entity without parsing messages.
const (
	CodeUnknownTool     = "unknown_tool"
	CodeUnknownResource = "unknown_resource"
	CodeSessionNotFound = "session_not_found"
)

// APIError represents a structured error with type, code, param, and message.
//
// Upstream catalog failures are deliberately NOT represented here: they
// are soft, converted to an absent result at the catalog boundary, and
// only ever recorded diagnostically.
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level
// error response body.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewValidationError creates an APIError for malformed tool arguments.
func NewValidationError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewUnknownToolError creates an APIError for a tool name that is not
// registered.
func NewUnknownToolError(name string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Code:    CodeUnknownTool,
		Message: fmt.Sprintf("unknown tool: %s", name),
	}
}

// NewUnknownResourceError creates an APIError for a resource URI that is
// not registered.
func NewUnknownResourceError(uri string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Code:    CodeUnknownResource,
		Message: fmt.Sprintf("unknown resource: %s", uri),
	}
}

// NewSessionNotFoundError creates an APIError for a message posted against
// a missing or closed session id.
func NewSessionNotFoundError(id string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Code:    CodeSessionNotFound,
		Message: fmt.Sprintf("unknown session: %s", id),
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}
