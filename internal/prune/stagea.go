// Package prune implements the two placement-only isolation filters: Stage
// A, run as a streaming 3-column sliding window over the scanner's output,
// and Stage C, run as a single pass over a region-keyed hash map of
// validator survivors.
package prune

import (
	"context"

	"afkfinder/internal/config"
	"afkfinder/internal/placement"
	"afkfinder/internal/scanner"
)

// StageA streams scanner columns through a 3-column sliding window,
// keeping a candidate iff it has at least (k-1) distinct neighbors within
// PairwiseBlocksStageA blocks among its own column and the eight
// region-neighbor slots in the adjacent columns. Survivors are delivered
// to emit in the order their owning regionZ appears within each column;
// ordering across columns follows scanner.Scan's regionX order.
func StageA(ctx context.Context, cfg config.Config, oracle placement.Oracle, emit func(placement.Candidate) error) error {
	threshold := cfg.NeighborThreshold()
	pairwise2 := int64(cfg.PairwiseBlocksStageA) * int64(cfg.PairwiseBlocksStageA)

	var w window
	process := func(prev, curr, next *scanner.Column) error {
		return processColumn(prev, curr, next, cfg, threshold, pairwise2, emit)
	}

	err := scanner.Scan(ctx, cfg, oracle, func(col *scanner.Column) error {
		return w.push(col, process)
	})
	if err != nil {
		return err
	}
	return w.flush(process)
}

func processColumn(prev, curr, next *scanner.Column, cfg config.Config, threshold int, pairwise2 int64, emit func(placement.Candidate) error) error {
	if curr == nil {
		return nil
	}
	for rz := curr.MinRegionZ; rz < curr.MinRegionZ+curr.Len(); rz++ {
		cand, present := curr.At(rz)
		if !present {
			continue
		}
		if cfg.KeepAll || threshold <= 0 {
			if err := emit(cand); err != nil {
				return err
			}
			continue
		}
		if countNeighbors(prev, curr, next, rz, cand, pairwise2, threshold) >= threshold {
			if err := emit(cand); err != nil {
				return err
			}
		}
	}
	return nil
}

// countNeighbors counts distinct candidates within pairwise2 (squared)
// block-distance of cand across the 3x3 regional block (curr plus its
// eight region-neighbors), halting as soon as threshold is reached.
func countNeighbors(prev, curr, next *scanner.Column, rz int, cand placement.Candidate, pairwise2 int64, threshold int) int {
	cx, cz := cand.Center(0)
	count := 0

	consider := func(col *scanner.Column, z int) bool {
		if col == nil {
			return false
		}
		other, present := col.At(z)
		if !present {
			return false
		}
		if col == curr && z == rz {
			return false // self
		}
		ox, oz := other.Center(0)
		dx, dz := int64(ox-cx), int64(oz-cz)
		if dx*dx+dz*dz <= pairwise2 {
			count++
		}
		return count >= threshold
	}

	for _, col := range [3]*scanner.Column{prev, curr, next} {
		for z := rz - 1; z <= rz+1; z++ {
			if consider(col, z) {
				return count
			}
		}
	}
	return count
}
