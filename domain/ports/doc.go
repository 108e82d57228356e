// Package ports defines the interfaces the binding shim depends on.
// Infrastructure adapters (the inference library binding, runtimes)
// implement them, so the shim itself stays free of cgo and Wasm details.
package ports
