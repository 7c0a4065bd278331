package group

import (
	"context"

	"afkfinder/internal/config"
	"afkfinder/internal/dedup"
	"afkfinder/internal/placement"

	"golang.org/x/sync/errgroup"
)

// Enumerate builds a spatial index over survivors and, for every anchor,
// enumerates k-subsets including that anchor whose members are pairwise
// within cfg.PairwiseBlocksGroup and whose centroid lies within every
// member's monument disk. Anchors are sharded into cfg.AnchorBatchSize
// batches across cfg.Threads workers, each appending to its own buffer; the
// buffers are concatenated and deduplicated before returning, so the
// result already contains each canonical group exactly once.
func Enumerate(ctx context.Context, cfg config.Config, survivors []placement.Candidate) ([]Group, error) {
	if len(survivors) == 0 {
		return nil, nil
	}

	idx := buildSpatialIndex(cfg, survivors)
	k := int(cfg.GroupSize)
	pairwise := cfg.PairwiseBlocksGroup

	type span struct{ start, end int }
	var batches []span
	for start := 0; start < len(survivors); start += cfg.AnchorBatchSize {
		end := start + cfg.AnchorBatchSize
		if end > len(survivors) {
			end = len(survivors)
		}
		batches = append(batches, span{start, end})
	}

	buffers := make([][]Group, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for bi, b := range batches {
		bi, b := bi, b
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			var local []Group
			for _, anchor := range survivors[b.start:b.end] {
				local = enumerateFromAnchor(idx, anchor, k, pairwise, local)
			}
			buffers[bi] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, buf := range buffers {
		total += len(buf)
	}
	merged := make([]Group, 0, total)
	for _, buf := range buffers {
		merged = append(merged, buf...)
	}

	offset := cfg.CenterOffset
	return dedup.Dedupe(merged, func(gr Group) uint64 { return gr.CanonicalKey(offset) }), nil
}

func enumerateFromAnchor(idx *spatialIndex, anchor placement.Candidate, k, pairwise int, out []Group) []Group {
	neighbors := idx.neighborhood(anchor, pairwise)

	rest := make([]placement.Candidate, 0, len(neighbors))
	sawAnchor := false
	for _, n := range neighbors {
		if !sawAnchor && n == anchor {
			sawAnchor = true
			continue
		}
		rest = append(rest, n)
	}
	if !sawAnchor || len(rest) < k-1 {
		return out
	}

	pairwise2 := int64(pairwise) * int64(pairwise)
	current := make([]placement.Candidate, 0, k)
	current = append(current, anchor)
	return combine(rest, 0, k-1, current, pairwise2, idx.centerOffset, out)
}

// combine extends current with `need` more members drawn from rest[start:],
// requiring every newly added member to be within pairwise2 of everything
// already chosen, then checks the centroid pre-feasibility test once a full
// k-tuple is assembled.
func combine(rest []placement.Candidate, start, need int, current []placement.Candidate, pairwise2 int64, centerOffset int, out []Group) []Group {
	if need == 0 {
		if centroidWithinAll(current, centerOffset) {
			members := make([]placement.Candidate, len(current))
			copy(members, current)
			out = append(out, Group{Members: members})
		}
		return out
	}
	for i := start; i <= len(rest)-need; i++ {
		cand := rest[i]
		if !allPairwiseWithin(current, cand, pairwise2, centerOffset) {
			continue
		}
		current = append(current, cand)
		out = combine(rest, i+1, need-1, current, pairwise2, centerOffset, out)
		current = current[:len(current)-1]
	}
	return out
}

func allPairwiseWithin(current []placement.Candidate, cand placement.Candidate, pairwise2 int64, centerOffset int) bool {
	cx, cz := cand.Center(centerOffset)
	for _, m := range current {
		mx, mz := m.Center(centerOffset)
		dx, dz := int64(cx-mx), int64(cz-mz)
		if dx*dx+dz*dz > pairwise2 {
			return false
		}
	}
	return true
}
