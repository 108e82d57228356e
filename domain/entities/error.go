package entities

import "fmt"

// ErrorDetail is the structured error carried back to the guest runtime.
// The guest raises it as its own exception; it is the only error channel
// of the wire protocol.
type ErrorDetail struct {
	// Kind is a machine-readable error type identifier
	// (e.g. "INVALID_ARGUMENT_COUNT", "INTERNAL_ERROR").
	Kind string `json:"error"`

	// Message is a short human-readable description.
	Message string `json:"message"`

	// Code is a numeric error code (e.g. 400, 500).
	Code int `json:"code"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewErrorDetail creates a new ErrorDetail with the given kind, message and code.
func NewErrorDetail(kind, message string, code int) *ErrorDetail {
	return &ErrorDetail{
		Kind:    kind,
		Message: message,
		Code:    code,
	}
}
