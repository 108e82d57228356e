package hostfuncs

import (
	"encoding/json"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
)

// ErrorResponse is the structured error returned to guests in place of a WASM trap.
type ErrorResponse = entities.ErrorDetail

// ErrorJSON serializes a failed result envelope carrying errResp.
// Returns nil if serialization fails (which should never happen for this simple type).
func ErrorJSON(errResp *ErrorResponse) []byte {
	data, err := json.Marshal(entities.ResultError(errResp))
	if err != nil {
		return nil
	}
	return data
}

// NewValidationError creates an error response for bad input (e.g., malformed JSON).
func NewValidationError(message string) *ErrorResponse {
	return entities.NewErrorDetail("VALIDATION_ERROR", message, 400)
}

// NewNotFoundError creates an error response for unknown export names.
func NewNotFoundError(name string) *ErrorResponse {
	return entities.NewErrorDetail("NOT_FOUND", "unknown host function: "+name, 404)
}

// NewInternalError creates an error response for unexpected failures.
func NewInternalError(message string) *ErrorResponse {
	return entities.NewErrorDetail("INTERNAL_ERROR", message, 500)
}

// NewPanicError creates an error response for recovered panics.
func NewPanicError(panicValue any) *ErrorResponse {
	var msg string
	if err, ok := panicValue.(error); ok {
		msg = err.Error()
	} else if s, ok := panicValue.(string); ok {
		msg = s
	} else {
		msg = "panic recovered"
	}
	return NewInternalError("panic: " + msg)
}
