package wasmhost

import (
	"context"
	"fmt"
)

// checkBounds validates that [ptr, ptr+length) fits inside a memory of
// memSize bytes. The end address is computed in 32 bits, so wraparound
// shows up as end < ptr.
func checkBounds(memSize, ptr, length uint32) error {
	end := ptr + length
	if end < ptr {
		return hostErr(ErrCodeOutOfBounds,
			fmt.Sprintf("address range 0x%x+%d overflows", ptr, length), nil)
	}
	if end > memSize {
		return hostErr(ErrCodeOutOfBounds,
			fmt.Sprintf("address range 0x%x+%d exceeds memory size %d", ptr, length, memSize), nil)
	}
	return nil
}

// ReadBytes copies length bytes at ptr out of guest memory.
func (h *Host) ReadBytes(ptr, length uint32) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.memory == nil {
		return nil, hostErr(ErrCodeNoMemory, "no module instantiated", nil)
	}
	if err := checkBounds(h.memory.Size(), ptr, length); err != nil {
		return nil, err
	}

	data, ok := h.memory.Read(ptr, length)
	if !ok {
		return nil, hostErr(ErrCodeReadFailed,
			fmt.Sprintf("reading %d bytes at 0x%x", length, ptr), nil)
	}
	// Read returns a view into guest memory; detach before the guest
	// can mutate it.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// EncodeFunc is the export a conformance guest provides: it encodes
// the numbered sample and returns the buffer's address and length in
// guest memory.
const EncodeFunc = "sats_encode"

// EncodeSample invokes the guest encoder for one numbered sample and
// returns the bytes it produced.
func (h *Host) EncodeSample(ctx context.Context, sample uint32) ([]byte, error) {
	results, err := h.CallFunction(ctx, EncodeFunc, uint64(sample))
	if err != nil {
		return nil, err
	}
	if len(results) != 2 {
		return nil, hostErr(ErrCodeBadResult,
			fmt.Sprintf("%s returned %d values, want ptr and len", EncodeFunc, len(results)), nil)
	}
	return h.ReadBytes(uint32(results[0]), uint32(results[1]))
}
