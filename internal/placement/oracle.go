package placement

import "afkfinder/internal/rng"

// Seed salt constants for the monument region-seed formula. These are the
// game's actual constants for this structure type, named and commented
// rather than inlined as magic numbers.
const (
	seedMulX = 341873128712
	seedMulZ = 132897987541
	seedSalt = 10387313
)

// triangularDrawBound is the nextInt bound used for both triangular draws.
// Together with the (32, 5) spacing/separation convention this biases
// candidates away from region edges.
const triangularDrawBound = 27

// Oracle derives the single candidate monument start chunk for a region
// from the world seed. It is a pure function: no package state, safe to
// call concurrently from any number of goroutines as long as each call
// constructs its own rng.LCG (which it does internally).
type Oracle struct {
	worldSeed int64
}

// NewOracle binds a world seed to an oracle.
func NewOracle(worldSeed int64) Oracle {
	return Oracle{worldSeed: worldSeed}
}

// regionSeed computes the per-region PRNG seed:
//
//	regionSeed = rx*341873128712 + rz*132897987541 + worldSeed + 10387313
func (o Oracle) regionSeed(region RegionCoord) int64 {
	return int64(region.RX)*seedMulX + int64(region.RZ)*seedMulZ + o.worldSeed + seedSalt
}

// CandidateFor draws the (possibly out-of-range) candidate start chunk for
// a region. The caller is responsible for filtering against the requested
// chunk bounds: the draw is unconditional and may land outside the region
// it was seeded from.
//
// Draw order is fixed: both X draws, then both Z draws.
func (o Oracle) CandidateFor(region RegionCoord) Candidate {
	r := rng.New(o.regionSeed(region))

	x1 := r.NextInt(triangularDrawBound)
	x2 := r.NextInt(triangularDrawBound)
	chunkX := region.RX*Spacing + int((x1+x2)/2)

	z1 := r.NextInt(triangularDrawBound)
	z2 := r.NextInt(triangularDrawBound)
	chunkZ := region.RZ*Spacing + int((z1+z2)/2)

	return Candidate{ChunkX: chunkX, ChunkZ: chunkZ}
}

// InChunkBounds reports whether a candidate's chunk coordinates lie within
// the requested inclusive bounds.
func InChunkBounds(c Candidate, minChunk, maxChunk int) bool {
	return c.ChunkX >= minChunk && c.ChunkX <= maxChunk &&
		c.ChunkZ >= minChunk && c.ChunkZ <= maxChunk
}
