// Package entities provides the core domain types of the binding shim:
// the dynamically typed values a guest runtime passes in, the invocation
// envelope that carries them, the bound object state and the result
// envelope returned to the guest.
package entities
