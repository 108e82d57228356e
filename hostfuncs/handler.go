package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
)

// ByteHandler is a function that accepts a JSON invocation and returns a
// JSON result. This is the common interface WASM runtimes can easily use.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// BindingFunc is a typed binding: it receives the decoded invocation and
// returns the result envelope. Raised errors travel inside the Result.
type BindingFunc func(context.Context, entities.Invocation) entities.Result

// NewBindingHandler wraps a BindingFunc into a ByteHandler.
// A malformed invocation never reaches fn; the guest gets a
// VALIDATION_ERROR result instead.
func NewBindingHandler(fn BindingFunc) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		inv, err := entities.DecodeInvocation(payload)
		if err != nil {
			return ErrorJSON(NewValidationError(err.Error())), nil
		}

		resp, err := json.Marshal(fn(ctx, inv))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return resp, nil
	}
}
