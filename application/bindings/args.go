package bindings

import (
	"github.com/modelfusion/llamacpp-bindings/domain/entities"
	domainerrors "github.com/modelfusion/llamacpp-bindings/domain/errors"
)

// requireText returns args[i] as text, or the error the guest must raise:
// an ArgumentCountError if fewer than i+1 arguments were passed, an
// ArgumentTypeError carrying typeMsg if args[i] is not text.
func requireText(function string, args entities.Args, i int, typeMsg string) (string, error) {
	if args.Len() <= i {
		return "", &domainerrors.ArgumentCountError{
			Function: function,
			Want:     i + 1,
			Got:      args.Len(),
		}
	}

	v := args.At(i)
	s, ok := v.Text()
	if !ok {
		return "", &domainerrors.ArgumentTypeError{
			Function: function,
			Message:  typeMsg,
			Want:     entities.KindString,
			Got:      v.Kind(),
			Index:    i,
		}
	}
	return s, nil
}

// requireReceiver decodes self as an instance of TypeName.
func requireReceiver(function string, self entities.Value) (entities.BoundObject, error) {
	obj, ok := entities.BoundObjectFrom(self, TypeName)
	if !ok {
		return entities.BoundObject{}, &domainerrors.ArgumentTypeError{
			Function: function,
			Message:  domainerrors.MsgIllegalInvocation,
			Want:     entities.KindObject,
			Got:      self.Kind(),
			Index:    -1,
		}
	}
	return obj, nil
}
