package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	llamacpp "github.com/modelfusion/llamacpp-bindings"
	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
	wazeroadapter "github.com/modelfusion/llamacpp-bindings/infrastructure/wazero"
)

// ExitError reports a guest that exited with a non-zero status.
type ExitError struct {
	Code uint32
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("guest exited with code %d", e.Code)
}

// Executor manages a wazero runtime with the bindings registered.
type Executor struct {
	runtime        wazero.Runtime
	registry       *hostfuncs.HandlerRegistry
	logger         *slog.Logger
	stdout         io.Writer
	stderr         io.Writer
	moduleName     string
	maxRequestSize uint32
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		moduleName:     wazeroadapter.DefaultModuleName,
		maxRequestSize: hostfuncs.DefaultMaxRequestSize,
		stdout:         io.Discard,
		stderr:         io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	if e.registry == nil {
		reg, err := llamacpp.Exports()
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	err := wazeroadapter.RegisterWithRuntime(ctx, rt, e.registry,
		wazeroadapter.WithModuleName(e.moduleName),
		wazeroadapter.WithMaxRequestSize(e.maxRequestSize),
		wazeroadapter.WithLogger(e.logger),
	)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	return e, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Runtime returns the underlying wazero runtime.
func (e *Executor) Runtime() wazero.Runtime {
	return e.runtime
}

// Run compiles and runs a guest command module to completion. args become
// the guest's argv after the program name. A zero exit status is success;
// any other status is returned as *ExitError.
func (e *Executor) Run(ctx context.Context, wasmBytes []byte, args ...string) error {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return fmt.Errorf("failed to compile module: %w", err)
	}
	defer compiled.Close(ctx)

	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs(append([]string{"guest"}, args...)...).
		WithStdout(e.stdout).
		WithStderr(e.stderr).
		WithSysWalltime().
		WithSysNanotime()

	e.logger.DebugContext(ctx, "host: running guest", "args", args, "module", e.moduleName)

	mod, err := e.runtime.InstantiateModule(ctx, compiled, cfg)
	if mod != nil {
		defer mod.Close(ctx)
	}
	if err != nil {
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() == 0 {
				return nil
			}
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run module: %w", err)
	}
	return nil
}
