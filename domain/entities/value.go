package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind is the dynamic type of a guest value.
type Kind string

const (
	KindUndefined Kind = "undefined"
	KindNull      Kind = "null"
	KindBoolean   Kind = "boolean"
	KindNumber    Kind = "number"
	KindString    Kind = "string"
	KindArray     Kind = "array"
	KindObject    Kind = "object"
)

// Value is one untyped value as received from the guest runtime, kept in
// its raw JSON encoding until a typed accessor inspects it.
// The zero Value is undefined (the argument was not passed at all).
type Value []byte

// ValueOf encodes a Go value into a guest Value.
func ValueOf(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return Value(data), nil
}

// MustValueOf is like ValueOf but panics on encoding failure.
// Intended for literals in tests and static tables.
func MustValueOf(v any) Value {
	val, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Kind reports the dynamic type of v by looking at its first token.
// It does not validate the rest of the encoding.
func (v Value) Kind() Kind {
	b := bytes.TrimSpace(v)
	if len(b) == 0 {
		return KindUndefined
	}
	switch b[0] {
	case 'n':
		return KindNull
	case 't', 'f':
		return KindBoolean
	case '"':
		return KindString
	case '[':
		return KindArray
	case '{':
		return KindObject
	default:
		return KindNumber
	}
}

// Text returns the string held by v. The boolean is false when v is not
// text-typed or its encoding is malformed; the caller decides which error
// that becomes.
func (v Value) Text() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// MarshalJSON implements json.Marshaler. An undefined value encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler by keeping a copy of the raw encoding.
func (v *Value) UnmarshalJSON(data []byte) error {
	if v == nil {
		return fmt.Errorf("entities.Value: UnmarshalJSON on nil pointer")
	}
	*v = append((*v)[0:0], data...)
	return nil
}

// Args is the ordered argument list of one invocation.
type Args []Value

// Len returns the number of arguments actually passed.
func (a Args) Len() int {
	return len(a)
}

// At returns the i-th argument, or an undefined Value if it was not passed.
func (a Args) At(i int) Value {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}
