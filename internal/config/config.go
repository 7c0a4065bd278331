// Package config defines the pipeline's single configuration value. Config
// is built by New, which applies defaults and validates, and is passed by
// value into the pipeline; there are no package-level variables. Its fields
// are exported: a caller may override tuning fields on its own copy before
// running the pipeline (cmd/afkfinder does, then calls Validate again).
package config

import "fmt"

// GroupSize selects which k-subsets the pipeline searches for.
type GroupSize int

const (
	Double GroupSize = 2
	Triple GroupSize = 3
	Quad   GroupSize = 4
)

// ParseGroupSize maps the CLI's {double|triple|quad} vocabulary to a
// GroupSize.
func ParseGroupSize(s string) (GroupSize, error) {
	switch s {
	case "double":
		return Double, nil
	case "triple":
		return Triple, nil
	case "quad":
		return Quad, nil
	default:
		return 0, fmt.Errorf("config: unknown group type %q, want double|triple|quad", s)
	}
}

// Config is the single immutable value threaded through every pipeline
// stage. Construct with New, which applies defaults and validates.
type Config struct {
	// Required search parameters, taken from the CLI's positional arguments.
	Seed          int64
	GroupSize     GroupSize
	RangeBlocks   int
	ExcludeBlocks int
	Threads       int

	// CenterOffset is the block offset added to chunk*16 when computing a
	// monument's center; 8 selects the alternate convention. Default 0.
	CenterOffset int

	// PairwiseBlocksStageA is the looser isolation threshold the early
	// streaming prune pass uses. Default 256.
	PairwiseBlocksStageA int

	// PairwiseBlocksGroup is the tighter threshold the post-validation
	// re-prune and group enumeration use. Default 224.
	PairwiseBlocksGroup int

	// KeepAll disables all pruning, for correctness testing.
	KeepAll bool

	// LocalStep is the coarse-scan lattice step in CoverageOptimizer.
	// Default 32.
	LocalStep int

	// KeepTop is the number of coarse-scan seeds retained for refinement.
	// Default 40.
	KeepTop int

	// RefineRadius bounds the multi-scale local search around each seed.
	// Default 24.
	RefineRadius int

	// RefineSteps are the descending step sizes used during refinement.
	// Default [4, 2, 1].
	RefineSteps []int

	// RequireOutside24 enables the inner-annulus constraint on the
	// coverage scorer. Default true.
	RequireOutside24 bool

	// AnchorBatchSize is the number of GroupEnumerator anchors sharded per
	// worker batch. Default 25000.
	AnchorBatchSize int

	// ValidatorBatchSize is the batch size used for validator calls.
	// Default 10000.
	ValidatorBatchSize int

	// ValidatorWasmPath optionally points at a WebAssembly plugin
	// implementing the biome-viability FFI contract. Empty means no
	// validator: the pipeline emits a placement-only superset.
	ValidatorWasmPath string

	// ValidatorVersion is passed through to the validator's create call,
	// identifying which game-version ruleset to validate against.
	ValidatorVersion int32
}

// New builds a Config from the required search parameters, applying every
// documented default and then validating. Returns a plain error if
// validation fails; config has no dependency on the pipeline error
// taxonomy, to avoid an import cycle, so callers that need a tagged error
// wrap this one.
func New(seed int64, groupSize GroupSize, rangeBlocks, excludeBlocks, threads int) (Config, error) {
	c := Config{
		Seed:                 seed,
		GroupSize:            groupSize,
		RangeBlocks:          rangeBlocks,
		ExcludeBlocks:        excludeBlocks,
		Threads:              threads,
		CenterOffset:         0,
		PairwiseBlocksStageA: 256,
		PairwiseBlocksGroup:  224,
		KeepAll:              false,
		LocalStep:            32,
		KeepTop:              40,
		RefineRadius:         24,
		RefineSteps:          []int{4, 2, 1},
		RequireOutside24:     true,
		AnchorBatchSize:      25000,
		ValidatorBatchSize:   10000,
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the invariants the CLI surface requires: rangeBlocks > 0,
// 0 <= excludeBlocks <= rangeBlocks, threads >= 1.
func (c Config) Validate() error {
	if c.RangeBlocks <= 0 {
		return fmt.Errorf("config: rangeBlocks must be > 0, got %d", c.RangeBlocks)
	}
	if c.ExcludeBlocks < 0 || c.ExcludeBlocks > c.RangeBlocks {
		return fmt.Errorf("config: excludeRadius must be in [0, rangeBlocks=%d], got %d", c.RangeBlocks, c.ExcludeBlocks)
	}
	if c.Threads < 1 {
		return fmt.Errorf("config: threads must be >= 1, got %d", c.Threads)
	}
	if c.GroupSize != Double && c.GroupSize != Triple && c.GroupSize != Quad {
		return fmt.Errorf("config: invalid group size %d", c.GroupSize)
	}
	if c.PairwiseBlocksStageA <= 0 || c.PairwiseBlocksGroup <= 0 {
		return fmt.Errorf("config: pairwise thresholds must be positive")
	}
	if c.LocalStep <= 0 || c.KeepTop <= 0 || c.RefineRadius < 0 {
		return fmt.Errorf("config: invalid coverage-optimizer tuning")
	}
	if c.AnchorBatchSize <= 0 || c.ValidatorBatchSize <= 0 {
		return fmt.Errorf("config: batch sizes must be positive")
	}
	return nil
}

// ExcludeChunks is the Chebyshev chunk-radius exclusion ring derived from
// ExcludeBlocks: excludeChunks = excludeBlocks/16.
func (c Config) ExcludeChunks() int {
	return c.ExcludeBlocks / 16
}

// ChunkBounds returns the inclusive [min, max] chunk coordinate range a
// single axis of the search spans, derived from RangeBlocks.
func (c Config) ChunkBounds() (minChunk, maxChunk int) {
	rangeChunks := c.RangeBlocks / 16
	return -rangeChunks, rangeChunks
}

// NeighborThreshold is the minimum distinct-neighbor count a candidate must
// meet to survive pruning for this GroupSize: k-1, trivially satisfied for
// k=1.
func (c Config) NeighborThreshold() int {
	return int(c.GroupSize) - 1
}
