// Package bindings implements the llama.cpp binding shim: one exported type
// (llamacppBindings, a constructor plus a greet method) and one free
// function (systemInfo).
//
// Every entry point validates the guest's untyped arguments through a thin
// typed accessor layer before doing any native work, and reports failures
// as InvalidArgumentCount or InvalidArgumentType errors which the guest
// raises as its own exceptions.
package bindings
