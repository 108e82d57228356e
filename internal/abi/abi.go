//go:build wasip1

// Package abi manages guest linear memory for calls into the bindings host.
//
// Values cross the boundary as a packed i64: pointer in the high 32 bits,
// length in the low 32 bits. The host writes responses through the
// allocate export; the guest frees them once read.
package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// PtrHighBits is the shift applied to the pointer half of a packed value.
const PtrHighBits = 32

// DefaultMaxPinned caps the bytes pinned at once across all calls.
const DefaultMaxPinned = 16 * 1024 * 1024

// pins keeps allocated slices reachable so the GC does not reclaim memory
// the host is about to read or write.
var pins = struct {
	sync.Mutex
	bufs  map[uint32][]byte
	total int
	limit int
}{
	bufs:  make(map[uint32][]byte),
	limit: DefaultMaxPinned,
}

//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	pins.Lock()
	defer pins.Unlock()

	if pins.total+int(size) > pins.limit {
		panic(fmt.Sprintf("abi: pinned memory limit exceeded (requested %d, pinned %d, limit %d)",
			size, pins.total, pins.limit))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	pins.bufs[ptr] = buf
	pins.total += int(size)
	return ptr
}

// deallocate unpins ptr. Accounting uses the pinned length, not size.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, size uint32) {
	pins.Lock()
	defer pins.Unlock()

	buf, ok := pins.bufs[ptr]
	if !ok {
		return
	}
	delete(pins.bufs, ptr)
	pins.total -= len(buf)
	if pins.total < 0 {
		pins.total = 0
	}
}

// Pinned reports the number of live allocations and their total size.
func Pinned() (count, bytes int) {
	pins.Lock()
	defer pins.Unlock()
	return len(pins.bufs), pins.total
}

// SetLimit changes the pinned memory cap.
func SetLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("abi: limit must be positive, got %d", limit)
	}
	pins.Lock()
	pins.limit = limit
	pins.Unlock()
	return nil
}

// Reset unpins everything.
func Reset() {
	pins.Lock()
	defer pins.Unlock()
	clear(pins.bufs)
	pins.total = 0
}

// PtrFromBytes copies data into freshly pinned memory and returns its
// packed location. Empty data packs to 0.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	copy(view(ptr, size), data)
	return PackPtrLen(ptr, size)
}

// BytesFromPtr returns a copy of the memory at packed.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	return append([]byte(nil), view(ptr, length)...)
}

// DeallocatePacked frees the memory at packed.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 {
		deallocate(ptr, length)
	}
}

// Call passes request to a host import and returns its response. Both
// buffers are released before Call returns.
func Call(fn func(uint64) uint64, request []byte) []byte {
	req := PtrFromBytes(request)
	resp := fn(req)
	DeallocatePacked(req)

	out := BytesFromPtr(resp)
	DeallocatePacked(resp)
	return out
}

// PackPtrLen packs a pointer and length into a single uint64.
// Panics on a null pointer with non-zero length.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with length %d", length))
	}
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen reverses PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: null pointer with length %d", length))
	}
	return ptr, length
}

func view(ptr, length uint32) []byte {
	//nolint:gosec // G103: linear memory offsets are valid pointers in wasm32
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
}
