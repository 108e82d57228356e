package host

import (
	"io"
	"log/slog"

	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithHostFunctions configures the executor with an export registry.
// Defaults to llamacpp.Exports().
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithModuleName sets the import module name guests bind against.
func WithModuleName(name string) Option {
	return func(e *Executor) {
		e.moduleName = name
	}
}

// WithMaxRequestSize bounds a single invocation read from guest memory.
func WithMaxRequestSize(size uint32) Option {
	return func(e *Executor) {
		e.maxRequestSize = size
	}
}

// WithStdout sets the writer for guest stdout. Defaults to io.Discard.
func WithStdout(w io.Writer) Option {
	return func(e *Executor) {
		e.stdout = w
	}
}

// WithStderr sets the writer for guest stderr. Defaults to io.Discard.
func WithStderr(w io.Writer) Option {
	return func(e *Executor) {
		e.stderr = w
	}
}

// WithLogger sets the executor's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}
