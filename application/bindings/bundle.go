package bindings

import (
	"context"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
	domainerrors "github.com/modelfusion/llamacpp-bindings/domain/errors"
	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
)

// Bundle returns the three exports backed by s.
func (s *Shim) Bundle() hostfuncs.Bundle {
	return hostfuncs.StaticBundle{
		{
			Name:    ExportConstructor,
			Kind:    hostfuncs.KindConstructor,
			Type:    TypeName,
			Params:  []string{string(entities.KindString)},
			Returns: TypeName,
			Handler: hostfuncs.NewBindingHandler(s.construct),
		},
		{
			Name:    ExportGreet,
			Kind:    hostfuncs.KindMethod,
			Type:    TypeName,
			Params:  []string{string(entities.KindString)},
			Returns: string(entities.KindString),
			Handler: hostfuncs.NewBindingHandler(s.greet),
		},
		{
			Name:    ExportSystemInfo,
			Kind:    hostfuncs.KindFunction,
			Params:  []string{},
			Returns: string(entities.KindString),
			Handler: hostfuncs.NewBindingHandler(s.systemInfo),
		},
	}
}

func (s *Shim) construct(_ context.Context, inv entities.Invocation) entities.Result {
	obj, err := s.Construct(inv.Args)
	if err != nil {
		return entities.ResultError(domainerrors.ToErrorDetail(err))
	}
	return resultOf(obj)
}

// greet keeps the null sentinel next to a raised error; callers must
// treat the error as authoritative.
func (s *Shim) greet(_ context.Context, inv entities.Invocation) entities.Result {
	label, err := s.Greet(inv.Self, inv.Args)
	if err != nil {
		return entities.ResultErrorWithNull(domainerrors.ToErrorDetail(err))
	}
	return resultOf(label)
}

func (s *Shim) systemInfo(_ context.Context, _ entities.Invocation) entities.Result {
	return resultOf(s.SystemInfo())
}

func resultOf(v any) entities.Result {
	res, err := entities.ResultOf(v)
	if err != nil {
		return entities.ResultError(domainerrors.ToErrorDetail(err))
	}
	return res
}
