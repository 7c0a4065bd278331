// Package afkfinder is the small public surface over the internal
// pipeline: a library entry point for callers that want AFK-point search
// results without going through the cmd/afkfinder CLI and its CSV output.
package afkfinder

import (
	"context"

	"afkfinder/internal/config"
	"afkfinder/internal/optimize"
	"afkfinder/internal/pipeline"
	"afkfinder/internal/progress"
	"afkfinder/internal/validate"
)

// Config is re-exported so callers never need to import internal/config
// directly.
type Config = config.Config

// GroupSize is re-exported so callers can construct a Config without
// importing internal/config directly.
type GroupSize = config.GroupSize

const (
	Double = config.Double
	Triple = config.Triple
	Quad   = config.Quad
)

// Result is one optimized AFK point, re-exported from internal/optimize.
type Result = optimize.Result

// NewConfig builds a validated Config from the five required search
// parameters, applying every documented default.
func NewConfig(seed int64, groupSize GroupSize, rangeBlocks, excludeBlocks, threads int) (Config, error) {
	return config.New(seed, groupSize, rangeBlocks, excludeBlocks, threads)
}

// Find runs the full pipeline (placement through coverage optimization)
// for cfg and returns the sorted results. If cfg.ValidatorWasmPath is set
// but unreadable, Find logs nothing itself. Callers that want the
// ValidatorMissing warning surfaced should call pipeline.WireValidator
// directly instead of Find.
func Find(ctx context.Context, cfg Config) ([]Result, error) {
	validator, err := pipeline.WireValidator(cfg)
	if err != nil {
		var pErr *pipeline.Error
		if pe, ok := err.(*pipeline.Error); ok {
			pErr = pe
		}
		if pErr == nil || pErr.Kind != pipeline.ValidatorMissing {
			return nil, err
		}
	}
	return pipeline.Run(ctx, cfg, validator, nil)
}

// FindWithProgress is Find plus a progress.Tracker the caller can poll or
// log from concurrently.
func FindWithProgress(ctx context.Context, cfg Config, validator validate.Validator, tracker *progress.Tracker) ([]Result, error) {
	return pipeline.Run(ctx, cfg, validator, tracker)
}
