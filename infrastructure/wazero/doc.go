// Package wazero serves a hostfuncs registry to guests running in wazero.
//
// Every export becomes a host function of signature (i64) -> i64. The
// argument is the guest's invocation envelope as packed pointer and length;
// the result is the response envelope, written into memory the host obtains
// from the guest's "allocate" export. Zero means no response was written.
//
//	reg, err := llamacpp.Exports()
//	if err != nil {
//		return err
//	}
//	rt := wazero.NewRuntime(ctx)
//	err = wazeroadapter.RegisterWithRuntime(ctx, rt, reg)
//
// A guest then declares
//
//	//go:wasmimport llamacpp systemInfo
//	func systemInfo(invocation uint64) uint64
package wazero
