// Package guest is the client side of the llama.cpp bindings for Go
// programs compiled to WebAssembly (GOOS=wasip1 GOARCH=wasm).
//
// Arguments are dynamically typed, exactly as a scripting runtime would
// pass them:
//
//	g, err := guest.NewGreeter("Alice")
//	if err != nil {
//		return err // *entities.ErrorDetail, e.g. INVALID_ARGUMENT_TYPE
//	}
//	label, err := g.Greet("Bob")
//
// The host prints the greeting lines; Greet returns the greeter's label.
// On native builds the package-level functions return ErrNotWasm.
package guest
