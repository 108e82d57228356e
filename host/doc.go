// Package host runs WebAssembly guests with the llama.cpp bindings
// available as imports.
//
// It owns the wazero runtime, instantiates WASI preview1, registers the
// export registry through infrastructure/wazero and runs guest command
// modules to completion.
package host
