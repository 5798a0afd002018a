// Package wasmhost runs conformance guest modules under wazero. A
// guest exports an encoder entry point; the host calls it, pulls the
// produced bytes out of guest memory with bounds checking, and hands
// them to the caller for comparison.
package wasmhost

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Error codes carried by HostError.
const (
	ErrCodeCompileFailed     = 1
	ErrCodeNoModule          = 2
	ErrCodeInstantiateFailed = 3
	ErrCodeNoMemory          = 4
	ErrCodeOutOfBounds       = 5
	ErrCodeFunctionNotFound  = 6
	ErrCodeCallFailed        = 7
	ErrCodeBadResult         = 8
	ErrCodeReadFailed        = 9
	ErrCodeCloseFailed       = 10
)

// HostError is a coded host-side failure.
type HostError struct {
	Code    uint16
	Message string
	Err     error
}

func (e *HostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wasmhost error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("wasmhost error %d: %s", e.Code, e.Message)
}

func (e *HostError) Unwrap() error { return e.Err }

func hostErr(code uint16, message string, err error) *HostError {
	return &HostError{Code: code, Message: message, Err: err}
}

// Config bounds the guest runtime.
type Config struct {
	// MemoryLimitPages caps guest memory, 64KiB per page.
	MemoryLimitPages uint32
	// CallTimeout bounds each guest call. Zero disables the timeout.
	CallTimeout time.Duration
}

// DefaultConfig returns the standard limits: 16MiB of guest memory and
// a ten second call budget.
func DefaultConfig() *Config {
	return &Config{
		MemoryLimitPages: 256,
		CallTimeout:      10 * time.Second,
	}
}

// Host owns one wazero runtime with at most one instantiated guest.
type Host struct {
	cfg      *Config
	mu       sync.RWMutex
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	module   api.Module
	memory   api.Memory
}

// NewHost creates a host. A nil config selects DefaultConfig.
func NewHost(cfg *Config) *Host {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Host{cfg: cfg}
}

// LoadModule compiles the guest binary.
func (h *Host) LoadModule(ctx context.Context, wasmBytes []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rcfg := wazero.NewRuntimeConfig().WithMemoryLimitPages(h.cfg.MemoryLimitPages)
	runtime := wazero.NewRuntimeWithConfig(ctx, rcfg)

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		runtime.Close(ctx)
		return hostErr(ErrCodeCompileFailed, "compiling module", err)
	}

	h.runtime = runtime
	h.compiled = compiled
	return nil
}

// Instantiate brings the compiled guest up. WASI is provided because
// TinyGo guests import it for panic handling.
func (h *Host) Instantiate(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.compiled == nil {
		return hostErr(ErrCodeNoModule, "no module loaded", nil)
	}

	wasi_snapshot_preview1.MustInstantiate(ctx, h.runtime)

	module, err := h.runtime.InstantiateModule(ctx, h.compiled,
		wazero.NewModuleConfig().WithName("").WithStartFunctions("_initialize"))
	if err != nil {
		return hostErr(ErrCodeInstantiateFailed, "instantiating module", err)
	}

	memory := module.Memory()
	if memory == nil {
		module.Close(ctx)
		return hostErr(ErrCodeNoMemory, "module exports no memory", nil)
	}

	h.module = module
	h.memory = memory
	return nil
}

// CallFunction invokes an exported guest function.
func (h *Host) CallFunction(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.module == nil {
		return nil, hostErr(ErrCodeNoModule, "no module instantiated", nil)
	}

	if h.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.CallTimeout)
		defer cancel()
	}

	fn := h.module.ExportedFunction(name)
	if fn == nil {
		return nil, hostErr(ErrCodeFunctionNotFound, "function not exported: "+name, nil)
	}

	results, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, hostErr(ErrCodeCallFailed, "calling "+name, err)
	}
	return results, nil
}

// Close tears down the guest instance and the runtime.
func (h *Host) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.module != nil {
		if err := h.module.Close(ctx); err != nil {
			return hostErr(ErrCodeCloseFailed, "closing instance", err)
		}
		h.module = nil
		h.memory = nil
	}
	if h.runtime != nil {
		if err := h.runtime.Close(ctx); err != nil {
			return hostErr(ErrCodeCloseFailed, "closing runtime", err)
		}
		h.runtime = nil
		h.compiled = nil
	}
	return nil
}
