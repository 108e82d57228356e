package host

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llamacpp "github.com/modelfusion/llamacpp-bindings"
	"github.com/modelfusion/llamacpp-bindings/application/bindings"
	"github.com/modelfusion/llamacpp-bindings/domain/ports"
)

// greeterWasm compiles examples/greeter for wasip1 once per test binary.
var greeterWasm = sync.OnceValues(func() ([]byte, error) {
	goBin, err := exec.LookPath("go")
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp("", "greeter")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "greeter.wasm")
	cmd := exec.Command(goBin, "build", "-o", out, "../examples/greeter")
	cmd.Env = append(os.Environ(), "GOOS=wasip1", "GOARCH=wasm", "CGO_ENABLED=0")
	if combined, err := cmd.CombinedOutput(); err != nil {
		return nil, &buildError{err: err, output: combined}
	}
	return os.ReadFile(out)
})

type buildError struct {
	err    error
	output []byte
}

func (e *buildError) Error() string {
	return "build greeter: " + e.err.Error() + "\n" + string(e.output)
}

func loadGreeter(t *testing.T) []byte {
	t.Helper()
	if testing.Short() {
		t.Skip("builds a wasip1 guest")
	}
	wasm, err := greeterWasm()
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		t.Skipf("go toolchain not available: %v", err)
	}
	require.NoError(t, err)
	return wasm
}

type greeterRun struct {
	shim   bytes.Buffer
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func runGreeter(t *testing.T, opts ...Option) (*greeterRun, error) {
	t.Helper()
	wasm := loadGreeter(t)
	ctx := context.Background()

	var r greeterRun
	info := ports.SystemInfoFunc(func() string { return "AVX = 1 | NEON = 0 |" })
	reg, err := llamacpp.NewRegistry(bindings.New(info, bindings.WithStdout(&r.shim)))
	require.NoError(t, err)

	base := []Option{WithHostFunctions(reg), WithStdout(&r.stdout), WithStderr(&r.stderr)}
	e, err := NewExecutor(ctx, append(base, opts...)...)
	require.NoError(t, err)
	defer e.Close(ctx)

	return &r, e.Run(ctx, wasm, "Alice", "Bob")
}

func TestExecutor_Run_Greeter(t *testing.T) {
	r, err := runGreeter(t)
	require.NoError(t, err, "guest stderr: %s", r.stderr.String())

	assert.Equal(t, "Hello Bob\nI am Alice\n", r.shim.String())
	assert.Contains(t, r.stdout.String(), "system info: AVX = 1 | NEON = 0 |")
	assert.Contains(t, r.stdout.String(), "greet returned: Alice")
	assert.Contains(t, r.stdout.String(), "expected error: INVALID_ARGUMENT_TYPE: You need to name yourself")
	assert.Empty(t, r.stderr.String())
}

func TestExecutor_Run_GreeterOversizedRequest(t *testing.T) {
	r, err := runGreeter(t, WithMaxRequestSize(8))

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, uint32(1), exitErr.Code)
	assert.Contains(t, r.stderr.String(), "VALIDATION_ERROR: request size 11 exceeds maximum 8 bytes")
	assert.Empty(t, r.shim.String())
}
