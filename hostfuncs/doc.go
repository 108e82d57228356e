// Package hostfuncs provides the runtime-neutral half of the binding shim:
// an immutable registry of named exports, each a ByteHandler that takes a
// JSON invocation envelope and returns a JSON result envelope.
//
// Nothing here depends on a WebAssembly runtime. The wazero adapter in
// infrastructure/wazero exposes a registry to guests; tests and the CLI
// call Invoke directly.
package hostfuncs
