package prune

import (
	"context"
	"testing"

	"afkfinder/internal/config"
	"afkfinder/internal/placement"
)

func TestStageAKeepAllKeepsEverything(t *testing.T) {
	cfg, _ := config.New(-141, config.Double, 5000, 0, 2)
	cfg.KeepAll = true

	oracle := placement.NewOracle(cfg.Seed)

	total := 0
	err := StageA(context.Background(), cfg, oracle, func(c placement.Candidate) error {
		total++
		return nil
	})
	if err != nil {
		t.Fatalf("StageA: %v", err)
	}

	// Cross-check against a raw scan with no pruning at all.
	minChunk, maxChunk := cfg.ChunkBounds()
	minRX, maxRX := placement.RegionBoundsForChunkRange(minChunk, maxChunk)
	minRZ, maxRZ := placement.RegionBoundsForChunkRange(minChunk, maxChunk)
	rawCount := 0
	for rx := minRX; rx <= maxRX; rx++ {
		for rz := minRZ; rz <= maxRZ; rz++ {
			c := oracle.CandidateFor(placement.RegionCoord{RX: rx, RZ: rz})
			if placement.InChunkBounds(c, minChunk, maxChunk) {
				rawCount++
			}
		}
	}
	if total != rawCount {
		t.Fatalf("keepAll StageA emitted %d, raw scan found %d", total, rawCount)
	}
}

func TestStageASurvivorsHaveNeighbors(t *testing.T) {
	cfg, _ := config.New(2595230174950416391, config.Triple, 20000, 0, 4)
	oracle := placement.NewOracle(cfg.Seed)

	var survivors []placement.Candidate
	err := StageA(context.Background(), cfg, oracle, func(c placement.Candidate) error {
		survivors = append(survivors, c)
		return nil
	})
	if err != nil {
		t.Fatalf("StageA: %v", err)
	}

	pairwise2 := int64(cfg.PairwiseBlocksStageA) * int64(cfg.PairwiseBlocksStageA)
	for _, s := range survivors {
		sx, sz := s.Center(0)
		neighbors := 0
		for _, o := range survivors {
			if o == s {
				continue
			}
			ox, oz := o.Center(0)
			dx, dz := int64(ox-sx), int64(oz-sz)
			if dx*dx+dz*dz <= pairwise2 {
				neighbors++
			}
		}
		if neighbors < cfg.NeighborThreshold() {
			t.Fatalf("survivor %+v has only %d neighbors within %d blocks, want >= %d",
				s, neighbors, cfg.PairwiseBlocksStageA, cfg.NeighborThreshold())
		}
	}
}

func TestStageCDropsIsolatedAfterValidation(t *testing.T) {
	cfg, _ := config.New(1, config.Double, 10000, 0, 2)
	pairwise := cfg.PairwiseBlocksGroup

	// Two candidates close together in adjacent regions (at most one
	// candidate exists per region), one far away.
	a := placement.Candidate{ChunkX: 26, ChunkZ: 0}
	b := placement.Candidate{ChunkX: 26 + (pairwise-16)/16, ChunkZ: 0}
	far := placement.Candidate{ChunkX: 10000, ChunkZ: 10000}

	survivors := StageC(cfg, []placement.Candidate{a, b, far})
	if len(survivors) != 2 {
		t.Fatalf("expected 2 survivors (a,b), got %d: %+v", len(survivors), survivors)
	}
	for _, s := range survivors {
		if s == far {
			t.Fatalf("isolated candidate %+v should have been dropped", far)
		}
	}
}

func TestStageCKeepAllBypasses(t *testing.T) {
	cfg, _ := config.New(1, config.Double, 10000, 0, 2)
	cfg.KeepAll = true
	input := []placement.Candidate{{ChunkX: 0, ChunkZ: 0}, {ChunkX: 99999, ChunkZ: 99999}}
	survivors := StageC(cfg, input)
	if len(survivors) != len(input) {
		t.Fatalf("keepAll should bypass Stage C: got %d, want %d", len(survivors), len(input))
	}
}
