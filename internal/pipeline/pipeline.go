package pipeline

import (
	"context"
	"sort"

	"afkfinder/internal/config"
	"afkfinder/internal/group"
	"afkfinder/internal/optimize"
	"afkfinder/internal/placement"
	"afkfinder/internal/prune"
	"afkfinder/internal/progress"
	"afkfinder/internal/validate"

	"golang.org/x/sync/errgroup"
)

// Run sequences the full pipeline: Stage A placement pruning, batched
// validation, Stage C re-pruning, group enumeration, and coverage
// optimization, then sorts the results by total coverage descending,
// Euclidean distance from origin ascending, and (x, z) for stability. An
// empty input or an empty result after pruning is success with a nil
// slice, not an error.
//
// tracker may be nil; when non-nil it is advanced once per Stage A
// survivor so the caller can emit progress lines.
func Run(ctx context.Context, cfg config.Config, validator validate.Validator, tracker *progress.Tracker) ([]optimize.Result, error) {
	oracle := placement.NewOracle(cfg.Seed)

	survivors, err := runStageA(ctx, cfg, oracle, tracker)
	if err != nil {
		return nil, err
	}
	if len(survivors) == 0 {
		return nil, nil
	}

	viable, err := runValidation(ctx, cfg, validator, survivors)
	if err != nil {
		return nil, err
	}
	if len(viable) == 0 {
		return nil, nil
	}

	stageC := prune.StageC(cfg, viable)
	if len(stageC) == 0 {
		return nil, nil
	}

	groups, err := group.Enumerate(ctx, cfg, stageC)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(Interrupted, err)
		}
		return nil, newError(ResourceExhaustion, err)
	}
	if len(groups) == 0 {
		return nil, nil
	}

	results, err := runOptimize(ctx, cfg, groups)
	if err != nil {
		return nil, err
	}

	sortResults(results)
	return results, nil
}

func runStageA(ctx context.Context, cfg config.Config, oracle placement.Oracle, tracker *progress.Tracker) ([]placement.Candidate, error) {
	var survivors []placement.Candidate
	err := prune.StageA(ctx, cfg, oracle, func(c placement.Candidate) error {
		survivors = append(survivors, c)
		if tracker != nil {
			tracker.Add(1)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(Interrupted, err)
		}
		// The scanner/window machinery is purely a function of cfg and the
		// oracle; a failure here that isn't cancellation means the
		// deterministic ordering or PRNG invariants it depends on broke,
		// which should never happen on a healthy platform.
		return nil, newError(PRNGParity, err)
	}
	return survivors, nil
}

func runValidation(ctx context.Context, cfg config.Config, validator validate.Validator, survivors []placement.Candidate) ([]placement.Candidate, error) {
	if validator == nil {
		validator = validate.None{}
	}

	batchSize := cfg.ValidatorBatchSize
	if batchSize <= 0 {
		batchSize = len(survivors)
	}

	viable := make([]placement.Candidate, 0, len(survivors))
	xs := make([]int32, 0, batchSize)
	zs := make([]int32, 0, batchSize)
	batch := make([]placement.Candidate, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		out := make([]bool, len(batch))
		if err := validator.IsViableBatch(ctx, xs, zs, out); err != nil {
			return err
		}
		for i, ok := range out {
			if ok {
				viable = append(viable, batch[i])
			}
		}
		xs, zs, batch = xs[:0], zs[:0], batch[:0]
		return nil
	}

	for _, c := range survivors {
		xs = append(xs, int32(c.ChunkX))
		zs = append(zs, int32(c.ChunkZ))
		batch = append(batch, c)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, newError(ValidatorInternal, err)
			}
		}
	}
	if err := flush(); err != nil {
		return nil, newError(ValidatorInternal, err)
	}
	return viable, nil
}

func runOptimize(ctx context.Context, cfg config.Config, groups []group.Group) ([]optimize.Result, error) {
	results := make([]optimize.Result, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for i, grp := range groups {
		i, grp := i, grp
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = optimize.Optimize(cfg, grp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, newError(Interrupted, err)
		}
		return nil, newError(ResourceExhaustion, err)
	}
	return results, nil
}

func sortResults(results []optimize.Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Total != results[j].Total {
			return results[i].Total > results[j].Total
		}
		di, dj := distance2FromOrigin(results[i]), distance2FromOrigin(results[j])
		if di != dj {
			return di < dj
		}
		if results[i].X != results[j].X {
			return results[i].X < results[j].X
		}
		return results[i].Z < results[j].Z
	})
}

func distance2FromOrigin(r optimize.Result) int64 {
	return int64(r.X)*int64(r.X) + int64(r.Z)*int64(r.Z)
}
