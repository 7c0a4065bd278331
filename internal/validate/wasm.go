package validate

import (
	"context"
	"encoding/binary"
	"fmt"
	"errors"
	"os"
	"sync"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// ErrModuleUnreadable wraps a failure to read the wasm module file itself
// (missing path, permissions), as distinct from every other load failure
// (malformed module, missing exports, a failing create() call). Callers
// that need to treat an absent validator as survivable, rather than a
// fatal load failure, should check errors.Is(err, ErrModuleUnreadable).
var ErrModuleUnreadable = errors.New("validate: wasm module unreadable")

// WasmPlugin implements Validator by delegating to a WebAssembly module
// exporting a create/isViableBatch/free FFI contract, realized over wasm
// linear memory rather than cgo. Loading and invocation follow the
// standard Engine/Store/Module/Instance/Exports sequence.
type WasmPlugin struct {
	instance *wasmer.Instance
	memory   *wasmer.Memory

	allocFn wasmer.NativeFunction
	batchFn wasmer.NativeFunction
	freeFn  wasmer.NativeFunction

	handle int32

	// batchSize caps how many coordinates are marshaled into wasm memory
	// per call, amortizing the FFI boundary crossing.
	batchSize int

	// wasm instances are not assumed thread-safe: calls are serialized per
	// handle.
	mu sync.Mutex
}

// LoadWasmPlugin reads and instantiates a wasm module from path, calling
// its afk_validator_create export with the world seed and a version
// ordinal. Returns (nil, err) if the file is missing or malformed. The
// caller (internal/pipeline) is responsible for downgrading a missing path
// to ValidatorMissing rather than treating every load failure as fatal.
func LoadWasmPlugin(path string, seed int64, version int32, batchSize int) (*WasmPlugin, error) {
	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModuleUnreadable, err)
	}

	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	module, err := wasmer.NewModule(store, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("validate: compiling wasm module: %w", err)
	}
	instance, err := wasmer.NewInstance(module, wasmer.NewImportObject())
	if err != nil {
		return nil, fmt.Errorf("validate: instantiating wasm module: %w", err)
	}

	memory, err := instance.Exports.GetMemory("memory")
	if err != nil {
		return nil, fmt.Errorf("validate: wasm module has no exported memory: %w", err)
	}

	createFn, err := instance.Exports.GetFunction("afk_validator_create")
	if err != nil {
		return nil, fmt.Errorf("validate: missing afk_validator_create export: %w", err)
	}
	allocFn, err := instance.Exports.GetFunction("afk_validator_alloc")
	if err != nil {
		return nil, fmt.Errorf("validate: missing afk_validator_alloc export: %w", err)
	}
	batchFn, err := instance.Exports.GetFunction("afk_validator_is_viable_batch")
	if err != nil {
		return nil, fmt.Errorf("validate: missing afk_validator_is_viable_batch export: %w", err)
	}
	freeFn, err := instance.Exports.GetFunction("afk_validator_free")
	if err != nil {
		return nil, fmt.Errorf("validate: missing afk_validator_free export: %w", err)
	}

	seedLo := int32(uint64(seed) & 0xFFFFFFFF)
	seedHi := int32(uint64(seed) >> 32)
	handleResult, err := createFn(seedLo, seedHi, version)
	if err != nil {
		return nil, fmt.Errorf("validate: afk_validator_create: %w", err)
	}
	handle, ok := handleResult.(int32)
	if !ok {
		return nil, fmt.Errorf("validate: afk_validator_create returned non-i32 handle")
	}
	if handle < 0 {
		return nil, fmt.Errorf("validate: afk_validator_create reported failure (handle=%d)", handle)
	}

	if batchSize <= 0 {
		batchSize = 10000
	}

	return &WasmPlugin{
		instance:  instance,
		memory:    memory,
		allocFn:   allocFn,
		batchFn:   batchFn,
		freeFn:    freeFn,
		handle:    handle,
		batchSize: batchSize,
	}, nil
}

func (p *WasmPlugin) ConcurrencySafe() bool { return false }

func (p *WasmPlugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.freeFn(p.handle)
	return err
}

// IsViableBatch marshals coordinates into wasm linear memory, invokes the
// module's batch validator, and unmarshals the result flags. Internally
// chunks the request into batchSize-sized calls.
func (p *WasmPlugin) IsViableBatch(ctx context.Context, chunkXs, chunkZs []int32, out []bool) error {
	if len(chunkXs) != len(chunkZs) || len(out) < len(chunkXs) {
		return fmt.Errorf("validate: mismatched slice lengths")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for start := 0; start < len(chunkXs); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + p.batchSize
		if end > len(chunkXs) {
			end = len(chunkXs)
		}
		if err := p.callBatch(chunkXs[start:end], chunkZs[start:end], out[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (p *WasmPlugin) callBatch(xs, zs []int32, out []bool) error {
	n := len(xs)
	if n == 0 {
		return nil
	}

	ptrXs, err := p.allocI32(int32(4 * n))
	if err != nil {
		return err
	}
	ptrZs, err := p.allocI32(int32(4 * n))
	if err != nil {
		return err
	}
	ptrOut, err := p.allocI32(int32(4 * n))
	if err != nil {
		return err
	}

	data := p.memory.Data()
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(data[int(ptrXs)+4*i:], uint32(xs[i]))
		binary.LittleEndian.PutUint32(data[int(ptrZs)+4*i:], uint32(zs[i]))
	}

	result, err := p.batchFn(p.handle, ptrXs, ptrZs, ptrOut, int32(n))
	if err != nil {
		return fmt.Errorf("validate: afk_validator_is_viable_batch: %w", err)
	}
	status, _ := result.(int32)
	if status != 0 {
		return fmt.Errorf("validate: afk_validator_is_viable_batch returned status %d", status)
	}

	// Memory() may have been reallocated by the call (wasm memory.grow);
	// re-fetch the backing slice before reading results.
	data = p.memory.Data()
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint32(data[int(ptrOut)+4*i:])
		out[i] = v != 0
	}
	return nil
}

func (p *WasmPlugin) allocI32(size int32) (int32, error) {
	res, err := p.allocFn(size)
	if err != nil {
		return 0, fmt.Errorf("validate: afk_validator_alloc: %w", err)
	}
	ptr, ok := res.(int32)
	if !ok {
		return 0, fmt.Errorf("validate: afk_validator_alloc returned non-i32 pointer")
	}
	return ptr, nil
}
