package hostfuncs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelfusion/llamacpp-bindings/internal/testutil"
)

func TestNewRegistry_Empty(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Empty(t, reg.Names())
	assert.Empty(t, reg.Exports())
}

func TestNewRegistry_WithByteHandler(t *testing.T) {
	echoHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	}

	reg, err := NewRegistry(
		WithByteHandler("echo", echoHandler),
	)
	require.NoError(t, err)

	assert.True(t, reg.Has("echo"))
	assert.False(t, reg.Has("nonexistent"))
	assert.Equal(t, []string{"echo"}, reg.Names())

	exp, ok := reg.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, KindFunction, exp.Kind)
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    []RegistryOption
		wantErr string
	}{
		{
			name: "duplicate name",
			opts: []RegistryOption{
				WithByteHandler("test", nopHandler),
				WithByteHandler("test", nopHandler),
			},
			wantErr: "duplicate export name",
		},
		{
			name:    "empty name",
			opts:    []RegistryOption{WithByteHandler("", nopHandler)},
			wantErr: "cannot be empty",
		},
		{
			name:    "missing handler",
			opts:    []RegistryOption{WithExport(Export{Name: "nohandler"})},
			wantErr: "has no handler",
		},
		{
			name: "duplicate across bundles",
			opts: []RegistryOption{
				WithBundle(StaticBundle{{Name: "a", Handler: nopHandler}}),
				WithBundle(StaticBundle{{Name: "a", Handler: nopHandler}}),
			},
			wantErr: "duplicate export name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHandlerRegistry_Invoke(t *testing.T) {
	echoHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return append([]byte("echo:"), payload...), nil
	}

	reg, err := NewRegistry(
		WithByteHandler("echo", echoHandler),
	)
	require.NoError(t, err)

	t.Run("found export", func(t *testing.T) {
		resp, err := reg.Invoke(context.Background(), "echo", []byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, "echo:hello", string(resp))
	})

	t.Run("not found export", func(t *testing.T) {
		resp, err := reg.Invoke(context.Background(), "unknown", []byte("test"))
		require.NoError(t, err)

		res := testutil.DecodeResult(t, resp)
		require.NotNil(t, res.Error)
		assert.Equal(t, "NOT_FOUND", res.Error.Kind)
		assert.Equal(t, 404, res.Error.Code)
		assert.Contains(t, res.Error.Message, "unknown")
	})
}

func TestHandlerRegistry_SortedViews(t *testing.T) {
	reg, err := NewRegistry(
		WithByteHandler("zebra", nopHandler),
		WithBundle(StaticBundle{
			{Name: "alpha", Kind: KindConstructor, Type: "T", Handler: nopHandler},
			{Name: "alpha.middle", Kind: KindMethod, Type: "T", Handler: nopHandler},
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "alpha.middle", "zebra"}, reg.Names())

	exports := reg.Exports()
	require.Len(t, exports, 3)
	assert.Equal(t, KindConstructor, exports[0].Kind)
	assert.Equal(t, KindMethod, exports[1].Kind)
	assert.Equal(t, KindFunction, exports[2].Kind)

	// Names returns a copy
	names := reg.Names()
	names[0] = "mutated"
	assert.Equal(t, "alpha", reg.Names()[0])
}

func TestHandlerRegistry_Invoke_SetsCallInfo(t *testing.T) {
	var captured CallInfo
	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		captured, _ = CallInfoFrom(ctx)
		return nil, nil
	}

	reg, err := NewRegistry(
		WithByteHandler("test_func", handler),
	)
	require.NoError(t, err)

	ctx := WithCallInfo(context.Background(), CallInfo{Caller: "guest"})
	_, err = reg.Invoke(ctx, "test_func", nil)
	require.NoError(t, err)
	assert.Equal(t, CallInfo{Export: "test_func", Caller: "guest"}, captured)
}

func TestWithMiddleware(t *testing.T) {
	var callOrder []string

	middleware1 := func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			callOrder = append(callOrder, "mw1-before")
			resp, err := next(ctx, payload)
			callOrder = append(callOrder, "mw1-after")
			return resp, err
		}
	}

	middleware2 := func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			callOrder = append(callOrder, "mw2-before")
			resp, err := next(ctx, payload)
			callOrder = append(callOrder, "mw2-after")
			return resp, err
		}
	}

	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		callOrder = append(callOrder, "handler")
		return nil, nil
	}

	reg, err := NewRegistry(
		WithMiddleware(middleware1, middleware2),
		WithByteHandler("test", handler),
	)
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), "test", nil)
	require.NoError(t, err)

	// FIFO order: mw1 wraps mw2 wraps handler
	expected := []string{"mw1-before", "mw2-before", "handler", "mw2-after", "mw1-after"}
	assert.Equal(t, expected, callOrder)
}

func nopHandler(ctx context.Context, payload []byte) ([]byte, error) {
	return nil, nil
}
