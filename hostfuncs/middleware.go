package hostfuncs

import (
	"context"
	"log/slog"
	"time"
)

// Middleware is a function that wraps a ByteHandler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next ByteHandler) ByteHandler

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that catches panics and converts
// them to an INTERNAL_ERROR result instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = ErrorJSON(NewPanicError(r))
					err = nil // Return JSON error, not Go error
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every invocation at debug
// level. A nil logger uses slog.Default().
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			l := logger
			if l == nil {
				l = slog.Default()
			}
			info, _ := CallInfoFrom(ctx)

			start := time.Now()
			resp, err := next(ctx, payload)
			attrs := []any{
				"export", info.Export,
				"duration", time.Since(start),
				"request_bytes", len(payload),
				"response_bytes", len(resp),
			}
			if info.Caller != "" {
				attrs = append(attrs, "caller", info.Caller)
			}
			if err != nil {
				l.ErrorContext(ctx, "host function failed", append(attrs, "error", err)...)
				return resp, err
			}
			l.DebugContext(ctx, "host function completed", attrs...)
			return resp, nil
		}
	}
}
