// Package placement reproduces the game's regional structure-placement
// scheme: mapping chunk coordinates to 32x32-chunk regions and, per region,
// drawing a single deterministic candidate monument start chunk.
package placement

// Spacing is the region size in chunks: monuments are placed at most once
// per Spacing x Spacing block of chunks.
const Spacing = 32

// RegionCoord identifies one Spacing x Spacing region of chunk space.
type RegionCoord struct {
	RX, RZ int
}

// modifiedChunkCoord adjusts a negative chunk coordinate before dividing by
// Spacing, shifting it left by (Spacing-1) so integer division rounds
// toward negative infinity instead of toward zero. Non-negative coordinates
// pass through unchanged.
func modifiedChunkCoord(c int) int {
	if c < 0 {
		return c - (Spacing - 1)
	}
	return c
}

// RegionOf returns the region containing the given chunk coordinates.
func RegionOf(chunkX, chunkZ int) RegionCoord {
	return RegionCoord{
		RX: modifiedChunkCoord(chunkX) / Spacing,
		RZ: modifiedChunkCoord(chunkZ) / Spacing,
	}
}

// RegionBoundsForChunkRange returns the inclusive range of region
// coordinates that can contain a chunk within [minChunk, maxChunk] on a
// single axis.
func RegionBoundsForChunkRange(minChunk, maxChunk int) (minRegion, maxRegion int) {
	minRegion = modifiedChunkCoord(minChunk) / Spacing
	maxRegion = modifiedChunkCoord(maxChunk) / Spacing
	return
}
