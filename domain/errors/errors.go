// Package errors provides the domain error types raised by the binding shim.
// All error types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
)

// Error kinds as they appear on the wire.
const (
	KindInvalidArgumentCount = "INVALID_ARGUMENT_COUNT"
	KindInvalidArgumentType  = "INVALID_ARGUMENT_TYPE"
	KindInternal             = "INTERNAL_ERROR"
)

// Default messages per error kind.
const (
	MsgWrongNumberOfArguments = "Wrong number of arguments"
	MsgNameYourself           = "You need to name yourself"
	MsgIntroduceYourself      = "You need to introduce yourself to greet"
	MsgIllegalInvocation      = "Illegal invocation"
)

// Sentinels for errors.Is checks against any ArgumentCountError or ArgumentTypeError.
var (
	ErrInvalidArgumentCount = stdErrors.New("invalid argument count")
	ErrInvalidArgumentType  = stdErrors.New("invalid argument type")
)

// DetailedError is implemented by errors that know their wire representation.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to the structured ErrorDetail sent to
// the guest. Unknown errors are reported as internal.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return entities.NewErrorDetail(KindInternal, err.Error(), 500)
}

// ArgumentCountError is raised when an entry point receives fewer arguments
// than it requires.
type ArgumentCountError struct {
	Function string
	Want     int
	Got      int
}

func (e *ArgumentCountError) Error() string {
	return MsgWrongNumberOfArguments
}

// Is matches ErrInvalidArgumentCount.
func (e *ArgumentCountError) Is(target error) bool {
	return target == ErrInvalidArgumentCount
}

// ToErrorDetail implements DetailedError.
func (e *ArgumentCountError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(KindInvalidArgumentCount, e.Error(), 400)
}

// ArgumentTypeError is raised when an argument (or the receiver) is present
// but of the wrong dynamic type.
type ArgumentTypeError struct {
	Function string
	Message  string
	Want     entities.Kind
	Got      entities.Kind
	Index    int // -1 for the receiver
}

func (e *ArgumentTypeError) Error() string {
	return e.Message
}

// Is matches ErrInvalidArgumentType.
func (e *ArgumentTypeError) Is(target error) bool {
	return target == ErrInvalidArgumentType
}

// ToErrorDetail implements DetailedError.
func (e *ArgumentTypeError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(KindInvalidArgumentType, e.Error(), 400)
}
