// Package llamacpp exposes llama.cpp system information and a small greeter
// type to WebAssembly guests.
//
// The guest-facing surface is three exports:
//
//	llamacppBindings        constructor, 1 text argument
//	llamacppBindings.greet  method, 1 text argument, returns the label
//	systemInfo              function, returns the library's system info
//
// Exports builds them once per process. Register the result with a wazero
// runtime through infrastructure/wazero, or run guests with host.Executor.
package llamacpp

import (
	"sync"

	"github.com/modelfusion/llamacpp-bindings/application/bindings"
	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
	"github.com/modelfusion/llamacpp-bindings/infrastructure/llama"
)

var (
	exportsOnce sync.Once
	exports     *hostfuncs.HandlerRegistry
	exportsErr  error
)

// Exports returns the process-wide export registry, backed by the linked
// inference library and writing diagnostics to os.Stdout. The registry is
// built on the first call; later calls return the same registry.
func Exports() (*hostfuncs.HandlerRegistry, error) {
	exportsOnce.Do(func() {
		exports, exportsErr = NewRegistry(bindings.New(llama.NewProvider()))
	})
	return exports, exportsErr
}

// NewRegistry builds a registry serving shim's exports behind panic recovery
// and invocation logging. Extra options are applied after the bundle.
func NewRegistry(shim *bindings.Shim, opts ...hostfuncs.RegistryOption) (*hostfuncs.HandlerRegistry, error) {
	base := []hostfuncs.RegistryOption{
		hostfuncs.WithMiddleware(
			hostfuncs.PanicRecoveryMiddleware(),
			hostfuncs.LoggingMiddleware(nil),
		),
		hostfuncs.WithBundle(shim.Bundle()),
	}
	return hostfuncs.NewRegistry(append(base, opts...)...)
}
