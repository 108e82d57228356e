package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modelfusion/llamacpp-bindings/domain/entities"
)

// DefaultMaxRequestSize limits the size of incoming invocations (1MB).
// This prevents malicious WASM modules from triggering OOM by claiming huge request sizes.
const DefaultMaxRequestSize = 1 * 1024 * 1024

// HandlerRegistry is an immutable collection of named exports.
// Once created via NewRegistry, exports cannot be added or removed.
// This ensures thread safety and lock-free lookups during execution.
type HandlerRegistry struct {
	exports    map[string]Export
	names      []string // sorted for consistent iteration
	middleware []Middleware
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	exports    map[string]Export
	middleware []Middleware
	errors     []error
}

// NewRegistry creates an immutable HandlerRegistry with the given options.
// Returns an error if any export name is registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(bindings.Bundle()),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{
		exports: make(map[string]Export),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.exports))
	for name := range b.exports {
		names = append(names, name)
	}
	sort.Strings(names)

	// Apply middleware in reverse order so first middleware wraps outermost
	wrapped := make(map[string]Export, len(b.exports))
	for name, exp := range b.exports {
		h := exp.Handler
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		exp.Handler = h
		wrapped[name] = exp
	}

	return &HandlerRegistry{
		exports:    wrapped,
		names:      names,
		middleware: b.middleware,
	}, nil
}

// Invoke dispatches a call by export name.
// Returns the JSON result, or a NOT_FOUND error result if the export is unknown.
func (r *HandlerRegistry) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	exp, ok := r.exports[name]
	if !ok {
		return ErrorJSON(NewNotFoundError(name)), nil
	}

	info, _ := CallInfoFrom(ctx)
	info.Export = name
	return exp.Handler(WithCallInfo(ctx, info), payload)
}

// Has returns true if an export with the given name is registered.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.exports[name]
	return ok
}

// Names returns a sorted list of all export names.
func (r *HandlerRegistry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Exports returns the export descriptors in name order.
func (r *HandlerRegistry) Exports() []Export {
	result := make([]Export, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.exports[name])
	}
	return result
}

// Lookup returns the descriptor for name.
func (r *HandlerRegistry) Lookup(name string) (Export, bool) {
	exp, ok := r.exports[name]
	return exp, ok
}

// addExport registers an export.
// Returns an error if the name is empty, taken, or has no handler.
func (b *registryBuilder) addExport(exp Export) error {
	if exp.Name == "" {
		return fmt.Errorf("export name cannot be empty")
	}
	if exp.Handler == nil {
		return fmt.Errorf("export %q has no handler", exp.Name)
	}
	if _, exists := b.exports[exp.Name]; exists {
		return fmt.Errorf("duplicate export name: %q", exp.Name)
	}
	if exp.Kind == "" {
		exp.Kind = KindFunction
	}
	b.exports[exp.Name] = exp
	return nil
}

// WithExport registers a single export.
func WithExport(exp Export) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addExport(exp); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithByteHandler registers a raw ByteHandler as a free function.
func WithByteHandler(name string, handler ByteHandler) RegistryOption {
	return WithExport(Export{Name: name, Kind: KindFunction, Handler: handler})
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// Call encodes inv, invokes the export and decodes the result envelope.
// A raised error is returned inside the Result, not as the Go error; the Go
// error reports transport failures only.
func (r *HandlerRegistry) Call(ctx context.Context, name string, inv entities.Invocation) (entities.Result, error) {
	payload, err := json.Marshal(inv)
	if err != nil {
		return entities.Result{}, fmt.Errorf("failed to marshal invocation: %w", err)
	}

	resp, err := r.Invoke(ctx, name, payload)
	if err != nil {
		return entities.Result{}, err
	}

	var res entities.Result
	if err := json.Unmarshal(resp, &res); err != nil {
		return entities.Result{}, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return res, nil
}
