package scanner

import (
	"context"
	"testing"

	"afkfinder/internal/config"
	"afkfinder/internal/placement"
)

func scanAll(t *testing.T, cfg config.Config) []*Column {
	t.Helper()
	oracle := placement.NewOracle(cfg.Seed)
	var cols []*Column
	lastRX := -1 << 62
	err := Scan(context.Background(), cfg, oracle, func(c *Column) error {
		if c.RegionX <= lastRX && lastRX != -1<<62 {
			t.Fatalf("columns out of order: %d after %d", c.RegionX, lastRX)
		}
		lastRX = c.RegionX
		cols = append(cols, c)
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return cols
}

func TestScanOrderedAndDeterministic(t *testing.T) {
	cfg, _ := config.New(-141, config.Double, 5000, 0, 4)

	a := scanAll(t, cfg)
	cfg.Threads = 1
	b := scanAll(t, cfg)

	if len(a) != len(b) {
		t.Fatalf("different column counts across thread counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].RegionX != b[i].RegionX {
			t.Fatalf("column %d: regionX %d vs %d", i, a[i].RegionX, b[i].RegionX)
		}
		for z := 0; z < a[i].Len(); z++ {
			ca, pa := a[i].At(z + a[i].MinRegionZ)
			cb, pb := b[i].At(z + b[i].MinRegionZ)
			if pa != pb || ca != cb {
				t.Fatalf("column %d slot %d differs across thread counts", i, z)
			}
		}
	}
}

func TestScanRespectsChunkBounds(t *testing.T) {
	cfg, _ := config.New(12345, config.Double, 2000, 0, 2)
	minChunk, maxChunk := cfg.ChunkBounds()

	cols := scanAll(t, cfg)
	for _, col := range cols {
		for z := 0; z < col.Len(); z++ {
			cand, present := col.At(z + col.MinRegionZ)
			if !present {
				continue
			}
			if !placement.InChunkBounds(cand, minChunk, maxChunk) {
				t.Fatalf("candidate %+v outside bounds [%d,%d]", cand, minChunk, maxChunk)
			}
		}
	}
}

func TestScanExcludesRing(t *testing.T) {
	cfg, _ := config.New(-141, config.Double, 5000, 2000, 4)
	excludeChunks := cfg.ExcludeChunks()

	cols := scanAll(t, cfg)
	for _, col := range cols {
		for z := 0; z < col.Len(); z++ {
			cand, present := col.At(z + col.MinRegionZ)
			if !present {
				continue
			}
			if chebyshev(cand.ChunkX, cand.ChunkZ) <= excludeChunks {
				t.Fatalf("candidate %+v should have been excluded (radius %d)", cand, excludeChunks)
			}
		}
	}
}

func TestScanEmptyRangeProducesNoError(t *testing.T) {
	cfg, _ := config.New(0, config.Double, 100000, 100000, 2)
	cols := scanAll(t, cfg)
	for _, col := range cols {
		for z := 0; z < col.Len(); z++ {
			_, present := col.At(z + col.MinRegionZ)
			if present {
				t.Fatalf("expected no candidates when excludeRadius == rangeBlocks")
			}
		}
	}
}
