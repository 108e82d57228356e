package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
)

// DefaultModuleName is the import module guests use for the bindings.
const DefaultModuleName = "llamacpp"

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// Logger receives memory and dispatch failures. Defaults to slog.Default().
	Logger *slog.Logger

	// ModuleName is the host module name (default: "llamacpp").
	ModuleName string

	// MaxRequestSize limits the size of incoming requests from guest memory.
	// Default is 1MB.
	MaxRequestSize uint32
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name (default: "llamacpp").
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxRequestSize sets the maximum request size from guest memory.
func WithMaxRequestSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxRequestSize = size
	}
}

// WithLogger sets the logger used for adapter failures.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		c.Logger = logger
	}
}

// defaultAdapterConfig returns the default adapter configuration.
func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		ModuleName:     DefaultModuleName,
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// RegisterWithRuntime registers every export of registry as a function of a
// host module named cfg.ModuleName.
//
// Registration is idempotent per runtime: if a module with that name is
// already instantiated, RegisterWithRuntime returns nil without touching it.
//
// Each export is wrapped to:
//   - Read the invocation from guest memory using the packed i64 ptr+len format
//   - Invoke the ByteHandler with the invocation payload
//   - Allocate result memory in the guest using the "allocate" export
//   - Write the result bytes to guest memory
//   - Return packed i64 ptr+len of the result
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *hostfuncs.HandlerRegistry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ModuleName == "" {
		return fmt.Errorf("wazero: module name cannot be empty")
	}

	if runtime.Module(cfg.ModuleName) != nil {
		cfg.Logger.DebugContext(ctx, "wazero: host module already registered", "module", cfg.ModuleName)
		return nil
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)

	for _, name := range registry.Names() {
		funcName := name // capture for closure
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				stack[0] = handleRegistryCall(ctx, mod, stack[0], registry, funcName, &cfg)
			}), []api.ValueType{api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}).
			WithName(funcName).
			Export(funcName)
	}

	if _, err := builder.Instantiate(ctx); err != nil {
		return fmt.Errorf("wazero: failed to instantiate host module %q: %w", cfg.ModuleName, err)
	}
	return nil
}

// handleRegistryCall handles one call from the guest and returns the packed
// location of the result, or 0 if nothing could be written back.
func handleRegistryCall(ctx context.Context, mod api.Module, packed uint64, registry *hostfuncs.HandlerRegistry, name string, cfg *AdapterConfig) uint64 {
	logger := cfg.Logger.With("function", name, "caller", mod.Name())

	if mod.Memory() == nil {
		logger.ErrorContext(ctx, "wazero: caller exports no memory")
		return 0
	}

	ptr, length := unpackPtrLen(packed)

	if length > cfg.MaxRequestSize {
		errMsg := fmt.Sprintf("request size %d exceeds maximum %d bytes", length, cfg.MaxRequestSize)
		logger.ErrorContext(ctx, "wazero: "+errMsg)
		return writeResponse(ctx, mod, logger, hostfuncs.ErrorJSON(hostfuncs.NewValidationError(errMsg)))
	}

	var request []byte
	if length > 0 {
		data, ok := mod.Memory().Read(ptr, length)
		if !ok {
			errMsg := "failed to read request from guest memory"
			logger.ErrorContext(ctx, "wazero: "+errMsg)
			return writeResponse(ctx, mod, logger, hostfuncs.ErrorJSON(hostfuncs.NewInternalError(errMsg)))
		}
		// The view aliases guest memory, which the handler may cause to grow.
		request = append([]byte(nil), data...)
	}

	callCtx := hostfuncs.WithCallInfo(ctx, hostfuncs.CallInfo{Caller: mod.Name()})
	response, err := registry.Invoke(callCtx, name, request)
	if err != nil {
		logger.ErrorContext(ctx, "wazero: handler invocation failed", "error", err)
		return writeResponse(ctx, mod, logger, hostfuncs.ErrorJSON(hostfuncs.NewInternalError(err.Error())))
	}

	return writeResponse(ctx, mod, logger, response)
}

// writeResponse allocates memory in the guest and writes the response bytes.
// Returns packed ptr+len or 0 on failure.
func writeResponse(ctx context.Context, mod api.Module, logger *slog.Logger, data []byte) uint64 {
	allocateFn := mod.ExportedFunction("allocate")
	if allocateFn == nil {
		logger.ErrorContext(ctx, "wazero: guest module missing 'allocate' export")
		return 0
	}

	results, err := allocateFn.Call(ctx, uint64(len(data)))
	if err != nil {
		logger.ErrorContext(ctx, "wazero: failed to call guest allocate", "error", err)
		return 0
	}
	ptr := uint32(results[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit

	if !mod.Memory().Write(ptr, data) {
		logger.ErrorContext(ctx, "wazero: failed to write response to guest memory")
		return 0
	}

	return packPtrLen(ptr, uint32(len(data))) //nolint:gosec // G115: Data length is bounded by config
}

// packPtrLen packs a pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func packPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// unpackPtrLen unpacks a pointer and length from a packed i64.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}
