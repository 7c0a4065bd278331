// Package validate defines the external biome-viability oracle contract
// and its implementations: None (no validator, the pipeline emits a
// placement-only superset) and a WebAssembly plugin built on wasmer-go.
// Single-item validation dispatches to the batch path with n=1, so callers
// never need a separate code path for one-off checks.
package validate

import "context"

// Validator is the biome-viability oracle contract. Implementations must be
// safe for concurrent batch calls unless they advertise otherwise via
// ConcurrencySafe.
type Validator interface {
	// IsViableBatch validates n (chunkX, chunkZ) pairs at once, writing one
	// bool per input into out (which the caller guarantees has length >=
	// n). Implementations should internally chunk batches larger than
	// their preferred size (on the order of 10^4, to amortize
	// cross-boundary calls).
	IsViableBatch(ctx context.Context, chunkXs, chunkZs []int32, out []bool) error

	// ConcurrencySafe reports whether IsViableBatch may be called
	// concurrently from multiple goroutines on this instance. Default
	// assumption is false: single-threaded per handle.
	ConcurrencySafe() bool

	// Close releases any resources (e.g. a wasm instance handle).
	Close() error
}

// IsViable validates a single (chunkX, chunkZ) pair by dispatching to the
// batch path with n=1.
func IsViable(ctx context.Context, v Validator, chunkX, chunkZ int32) (bool, error) {
	out := make([]bool, 1)
	if err := v.IsViableBatch(ctx, []int32{chunkX}, []int32{chunkZ}, out); err != nil {
		return false, err
	}
	return out[0], nil
}
