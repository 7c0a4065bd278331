// Package scanner runs a parallel column-by-column scan over a
// region-coordinate rectangle, emitting candidate chunks inside the
// requested bounds in strict regionX order regardless of the order
// workers finish in.
//
// The worker pool uses golang.org/x/sync/errgroup for first-error-wins
// cancellation: a worker failure cancels the remaining work and no partial
// columns are ever emitted after it.
package scanner

import (
	"container/heap"
	"context"
	"fmt"

	"afkfinder/internal/config"
	"afkfinder/internal/placement"

	"golang.org/x/sync/errgroup"
)

// Yield is called once per regionX, strictly in ascending regionX order.
// Returning an error aborts the scan.
type Yield func(*Column) error

// Scan walks [minRegionX, maxRegionX] x [minRegionZ, maxRegionZ], deriving
// those bounds from cfg's chunk bounds, and calls yield once per regionX in
// order. Inflight columns are capped at 4x the configured thread count, and
// any worker error cancels the remaining work and is returned to the
// caller (no partial columns are ever yielded after an error).
func Scan(ctx context.Context, cfg config.Config, oracle placement.Oracle, yield Yield) error {
	minChunk, maxChunk := cfg.ChunkBounds()
	minRegionX, maxRegionX := placement.RegionBoundsForChunkRange(minChunk, maxChunk)
	minRegionZ, maxRegionZ := placement.RegionBoundsForChunkRange(minChunk, maxChunk)
	excludeChunks := cfg.ExcludeChunks()

	total := maxRegionX - minRegionX + 1
	if total <= 0 {
		return nil
	}

	inflightCap := cfg.Threads * 4
	if inflightCap < 1 {
		inflightCap = 1
	}

	g, gctx := errgroup.WithContext(ctx)

	results := make(chan *Column, inflightCap)

	g.Go(func() error {
		defer close(results)
		inner, innerCtx := errgroup.WithContext(gctx)
		inner.SetLimit(cfg.Threads)
		for rx := minRegionX; rx <= maxRegionX; rx++ {
			rx := rx
			select {
			case <-innerCtx.Done():
				return inner.Wait()
			default:
			}
			inner.Go(func() error {
				col := buildColumn(oracle, rx, minRegionZ, maxRegionZ, minChunk, maxChunk, excludeChunks)
				select {
				case results <- col:
					return nil
				case <-innerCtx.Done():
					return innerCtx.Err()
				}
			})
		}
		return inner.Wait()
	})

	// Reorder: workers finish columns out of order, but Stage A's sliding
	// window requires strict regionX order even though production is
	// unordered.
	g.Go(func() error {
		return reorderAndYield(gctx, results, minRegionX, maxRegionX, yield)
	})

	return g.Wait()
}

func buildColumn(oracle placement.Oracle, regionX, minRegionZ, maxRegionZ, minChunk, maxChunk, excludeChunks int) *Column {
	col := NewColumn(regionX, minRegionZ, maxRegionZ)
	for rz := minRegionZ; rz <= maxRegionZ; rz++ {
		region := placement.RegionCoord{RX: regionX, RZ: rz}
		cand := oracle.CandidateFor(region)

		if !placement.InChunkBounds(cand, minChunk, maxChunk) {
			continue
		}
		if excludeChunks > 0 && chebyshev(cand.ChunkX, cand.ChunkZ) <= excludeChunks {
			continue
		}
		col.Set(rz, cand.ChunkX, cand.ChunkZ)
	}
	return col
}

func chebyshev(x, z int) int {
	if x < 0 {
		x = -x
	}
	if z < 0 {
		z = -z
	}
	if x > z {
		return x
	}
	return z
}

// columnHeap orders buffered out-of-order columns by RegionX so they can be
// released to yield as soon as the next expected index arrives.
type columnHeap []*Column

func (h columnHeap) Len() int            { return len(h) }
func (h columnHeap) Less(i, j int) bool  { return h[i].RegionX < h[j].RegionX }
func (h columnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *columnHeap) Push(x interface{}) { *h = append(*h, x.(*Column)) }
func (h *columnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func reorderAndYield(ctx context.Context, results <-chan *Column, minRegionX, maxRegionX int, yield Yield) error {
	next := minRegionX
	buf := &columnHeap{}
	heap.Init(buf)

	for col := range results {
		heap.Push(buf, col)
		for buf.Len() > 0 && (*buf)[0].RegionX == next {
			c := heap.Pop(buf).(*Column)
			if err := yield(c); err != nil {
				return err
			}
			next++
		}
	}
	if ctx.Err() != nil {
		// Producer side already failed or was canceled; that error takes
		// precedence and is what errgroup.Wait will surface.
		return nil
	}
	if buf.Len() != 0 || next != maxRegionX+1 {
		return fmt.Errorf("scanner: incomplete column stream: next=%d max=%d buffered=%d", next, maxRegionX, buf.Len())
	}
	return nil
}
