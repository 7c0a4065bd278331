package prune

import (
	"afkfinder/internal/config"
	"afkfinder/internal/intmap"
	"afkfinder/internal/placement"
)

// pack folds a region coordinate into a single uint64 key for intmap.
func pack(rx, rz int) uint64 {
	return uint64(uint32(rx))<<32 | uint64(uint32(rz))
}

// StageC re-applies the isolation filter after validation: it rebuilds a
// region-keyed open-addressed map from the biome-viable survivors, then for
// each survivor re-counts viable neighbors across the 3x3 region window
// (its own region plus the eight adjacent regions) and drops it if fewer
// than (k-1) remain.
//
// Unlike Stage A, which sees candidates only through a streaming
// three-column window, Stage C operates on a static snapshot (validation has already happened), so a
// random-access map is the natural structure rather than a streaming
// window. The threshold is PairwiseBlocksGroup (224 by default), tighter
// than Stage A's 256-block threshold since by this point the remaining
// candidates are few enough to afford the stricter isolation check.
func StageC(cfg config.Config, viable []placement.Candidate) []placement.Candidate {
	threshold := cfg.NeighborThreshold()
	if cfg.KeepAll || threshold <= 0 {
		return viable
	}

	byRegion := intmap.New[placement.Candidate](len(viable))
	for _, c := range viable {
		r := c.Region()
		byRegion.Put(pack(r.RX, r.RZ), c)
	}

	pairwise2 := int64(cfg.PairwiseBlocksGroup) * int64(cfg.PairwiseBlocksGroup)

	survivors := make([]placement.Candidate, 0, len(viable))
	for _, c := range viable {
		if countRegionNeighbors(byRegion, c, pairwise2, threshold) >= threshold {
			survivors = append(survivors, c)
		}
	}
	return survivors
}

func countRegionNeighbors(byRegion *intmap.Map[placement.Candidate], cand placement.Candidate, pairwise2 int64, threshold int) int {
	r := cand.Region()
	cx, cz := cand.Center(0)
	count := 0

	for drx := -1; drx <= 1; drx++ {
		for drz := -1; drz <= 1; drz++ {
			if drx == 0 && drz == 0 {
				continue
			}
			other, ok := byRegion.Get(pack(r.RX+drx, r.RZ+drz))
			if !ok {
				continue
			}
			ox, oz := other.Center(0)
			dx, dz := int64(ox-cx), int64(oz-cz)
			if dx*dx+dz*dz <= pairwise2 {
				count++
				if count >= threshold {
					return count
				}
			}
		}
	}
	return count
}
