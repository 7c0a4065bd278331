package group

import (
	"context"
	"testing"

	"afkfinder/internal/config"
	"afkfinder/internal/placement"
)

func chunkFor(center int) int { return center / 16 }

func TestEnumerateFindsFeasibleTriple(t *testing.T) {
	// Centers (0,0), (160,0), (80,128): pairwise distances ~160, ~150.9,
	// ~150.9 (all <= 224) and a centroid within 128 of every member.
	a := placement.Candidate{ChunkX: chunkFor(0), ChunkZ: chunkFor(0)}
	b := placement.Candidate{ChunkX: chunkFor(160), ChunkZ: chunkFor(0)}
	c := placement.Candidate{ChunkX: chunkFor(80), ChunkZ: chunkFor(128)}

	cfg, err := config.New(1, config.Triple, 100000, 0, 2)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	groups, err := Enumerate(context.Background(), cfg, []placement.Candidate{a, b, c})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected exactly 1 deduped group, got %d: %+v", len(groups), groups)
	}
	if len(groups[0].Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(groups[0].Members))
	}
}

func TestEnumerateRejectsInfeasibleCentroid(t *testing.T) {
	// Centers (0,0), (208,0), (96,192): every pairwise distance is <= 224,
	// but the centroid's distance to (96,192) is sqrt(16409) > 128, so the
	// pre-feasibility check must reject the triple even though all pairs
	// individually qualify.
	a := placement.Candidate{ChunkX: chunkFor(0), ChunkZ: chunkFor(0)}
	b := placement.Candidate{ChunkX: chunkFor(208), ChunkZ: chunkFor(0)}
	c := placement.Candidate{ChunkX: chunkFor(96), ChunkZ: chunkFor(192)}

	cfg, err := config.New(1, config.Triple, 100000, 0, 2)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	groups, err := Enumerate(context.Background(), cfg, []placement.Candidate{a, b, c})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected 0 groups (centroid infeasible), got %d: %+v", len(groups), groups)
	}
}

func TestEnumerateDoublePairwiseBoundary(t *testing.T) {
	// Exactly 224 blocks apart: the pairwise bound is inclusive.
	a := placement.Candidate{ChunkX: chunkFor(0), ChunkZ: chunkFor(0)}
	b := placement.Candidate{ChunkX: chunkFor(224), ChunkZ: chunkFor(0)}

	cfg, err := config.New(1, config.Double, 100000, 0, 2)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	groups, err := Enumerate(context.Background(), cfg, []placement.Candidate{a, b})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected the boundary pair to be emitted, got %d groups", len(groups))
	}
}

func TestEnumerateNoDuplicateCanonicalKeys(t *testing.T) {
	a := placement.Candidate{ChunkX: chunkFor(0), ChunkZ: chunkFor(0)}
	b := placement.Candidate{ChunkX: chunkFor(160), ChunkZ: chunkFor(0)}
	c := placement.Candidate{ChunkX: chunkFor(80), ChunkZ: chunkFor(128)}

	cfg, err := config.New(1, config.Triple, 100000, 0, 4)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	groups, err := Enumerate(context.Background(), cfg, []placement.Candidate{a, b, c})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	seen := map[uint64]bool{}
	for _, g := range groups {
		key := g.CanonicalKey(cfg.CenterOffset)
		if seen[key] {
			t.Fatalf("duplicate canonical key %d in enumerator output", key)
		}
		seen[key] = true
	}
}

func TestEnumerateEmptyInput(t *testing.T) {
	cfg, err := config.New(1, config.Double, 100000, 0, 2)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	groups, err := Enumerate(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups for empty input, got %d", len(groups))
	}
}
