package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Invocation is one call from the guest runtime into an exported binding.
// It exists only for the duration of that call.
type Invocation struct {
	// Self is the receiver for instance methods. Undefined for constructors
	// and free functions.
	Self Value `json:"self,omitempty"`

	// Args are the positional arguments in call order.
	Args Args `json:"args"`
}

// NewInvocation builds an invocation from Go values, encoding each argument.
func NewInvocation(self *BoundObject, args ...any) (Invocation, error) {
	inv := Invocation{Args: make(Args, 0, len(args))}
	if self != nil {
		v, err := ValueOf(self)
		if err != nil {
			return Invocation{}, err
		}
		inv.Self = v
	}
	for i, a := range args {
		v, err := ValueOf(a)
		if err != nil {
			return Invocation{}, fmt.Errorf("argument %d: %w", i, err)
		}
		inv.Args = append(inv.Args, v)
	}
	return inv, nil
}

// DecodeInvocation parses an invocation payload. An empty payload is an
// invocation without receiver or arguments.
func DecodeInvocation(payload []byte) (Invocation, error) {
	var inv Invocation
	if len(bytes.TrimSpace(payload)) == 0 {
		return inv, nil
	}
	if err := json.Unmarshal(payload, &inv); err != nil {
		return Invocation{}, fmt.Errorf("failed to unmarshal invocation: %w", err)
	}
	return inv, nil
}
