package wasmhost

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, uint32(256), cfg.MemoryLimitPages)
	assert.Equal(t, 10*time.Second, cfg.CallTimeout)
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name    string
		memSize uint32
		ptr     uint32
		length  uint32
		wantErr string
	}{
		{name: "inside", memSize: 100, ptr: 10, length: 20},
		{name: "exact fit", memSize: 100, ptr: 0, length: 100},
		{name: "empty at end", memSize: 100, ptr: 100, length: 0},
		{name: "past end", memSize: 100, ptr: 90, length: 20, wantErr: "exceeds memory size"},
		{name: "empty past end", memSize: 100, ptr: 200, length: 0, wantErr: "exceeds memory size"},
		{name: "wraparound", memSize: 100, ptr: 0xFFFFFFFF, length: 2, wantErr: "overflows"},
		{name: "huge length", memSize: 100, ptr: 1, length: 0xFFFFFFFF, wantErr: "overflows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkBounds(tt.memSize, tt.ptr, tt.length)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var he *HostError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, uint16(ErrCodeOutOfBounds), he.Code)
		})
	}
}

func TestHostGuardsBeforeLoad(t *testing.T) {
	ctx := context.Background()
	h := NewHost(nil)

	err := h.Instantiate(ctx)
	requireHostCode(t, err, ErrCodeNoModule)

	_, err = h.CallFunction(ctx, EncodeFunc)
	requireHostCode(t, err, ErrCodeNoModule)

	_, err = h.ReadBytes(0, 4)
	requireHostCode(t, err, ErrCodeNoMemory)

	_, err = h.EncodeSample(ctx, 0)
	requireHostCode(t, err, ErrCodeNoModule)

	assert.NoError(t, h.Close(ctx))
}

func TestLoadModuleRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	h := NewHost(nil)
	defer h.Close(ctx)

	err := h.LoadModule(ctx, []byte("not a wasm module"))
	requireHostCode(t, err, ErrCodeCompileFailed)
}

func TestHostErrorFormat(t *testing.T) {
	cause := errors.New("boom")
	he := hostErr(ErrCodeCallFailed, "calling sats_encode", cause)
	assert.Equal(t, "wasmhost error 7: calling sats_encode: boom", he.Error())
	assert.ErrorIs(t, he, cause)

	bare := hostErr(ErrCodeNoModule, "no module loaded", nil)
	assert.Equal(t, "wasmhost error 2: no module loaded", bare.Error())
}

func requireHostCode(t *testing.T, err error, code uint16) {
	t.Helper()
	require.Error(t, err)
	var he *HostError
	require.True(t, errors.As(err, &he), "error %v is not a HostError", err)
	assert.Equal(t, code, he.Code)
}
