package entities

import (
	"encoding/json"
	"fmt"
)

// nullValue is the sentinel returned alongside an error by methods.
var nullValue = Value("null")

// Result is the response envelope of one invocation.
// On success Error is nil. On failure Error carries the exception the guest
// must raise; Value is either absent or the null sentinel and carries no
// meaning of its own.
type Result struct {
	Value Value        `json:"value,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ResultOf creates a successful Result holding v.
func ResultOf(v any) (Result, error) {
	val, err := ValueOf(v)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: val}, nil
}

// ResultError creates a failed Result without a value.
func ResultError(detail *ErrorDetail) Result {
	return Result{Error: detail}
}

// ResultErrorWithNull creates a failed Result that also carries the null sentinel.
func ResultErrorWithNull(detail *ErrorDetail) Result {
	return Result{Value: nullValue, Error: detail}
}

// Failed reports whether the invocation raised.
func (r Result) Failed() bool {
	return r.Error != nil
}

// Decode unmarshals the result value into dst. It returns the carried
// error if the invocation raised.
func (r Result) Decode(dst any) error {
	if r.Error != nil {
		return r.Error
	}
	if len(r.Value) == 0 {
		return fmt.Errorf("result has no value")
	}
	if err := json.Unmarshal(r.Value, dst); err != nil {
		return fmt.Errorf("failed to decode result value: %w", err)
	}
	return nil
}
