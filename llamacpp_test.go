package llamacpp

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelfusion/llamacpp-bindings/application/bindings"
	"github.com/modelfusion/llamacpp-bindings/domain/entities"
	"github.com/modelfusion/llamacpp-bindings/infrastructure/llama"
)

func TestExports_BuiltOnce(t *testing.T) {
	first, err := Exports()
	require.NoError(t, err)

	second, err := Exports()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{
		bindings.ExportConstructor,
		bindings.ExportGreet,
		bindings.ExportSystemInfo,
	}, first.Names())
}

func TestExports_SystemInfo(t *testing.T) {
	reg, err := Exports()
	require.NoError(t, err)

	res, err := reg.Call(context.Background(), bindings.ExportSystemInfo, entities.Invocation{})
	require.NoError(t, err)
	require.False(t, res.Failed())

	var info string
	require.NoError(t, res.Decode(&info))
	assert.NotEmpty(t, info)
	assert.Equal(t, llama.SystemInfo(), info)
}

func TestNewRegistry_AliceAndBob(t *testing.T) {
	var out bytes.Buffer
	reg, err := NewRegistry(bindings.New(llama.NewProvider(), bindings.WithStdout(&out)))
	require.NoError(t, err)
	ctx := context.Background()

	inv, err := entities.NewInvocation(nil, "Alice")
	require.NoError(t, err)
	res, err := reg.Call(ctx, bindings.ExportConstructor, inv)
	require.NoError(t, err)

	var alice entities.BoundObject
	require.NoError(t, res.Decode(&alice))

	inv, err = entities.NewInvocation(&alice, "Bob")
	require.NoError(t, err)
	res, err = reg.Call(ctx, bindings.ExportGreet, inv)
	require.NoError(t, err)

	var label string
	require.NoError(t, res.Decode(&label))
	assert.Equal(t, "Alice", label)
	assert.Equal(t, "Hello Bob\nI am Alice\n", out.String())
}
