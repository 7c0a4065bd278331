package placement

// Candidate is a monument start chunk, immutable once emitted. At most one
// Candidate exists per region.
type Candidate struct {
	ChunkX, ChunkZ int
}

// DefaultCenterOffset is the default block offset added to chunk*16 when deriving
// a monument's block-space center; 8 selects the alternate
// center-of-chunk convention.
const DefaultCenterOffset = 0

// Center returns the block-space center of the candidate under the given
// offset convention: chunk*16 + offset.
func (c Candidate) Center(offset int) (x, z int) {
	return c.ChunkX*16 + offset, c.ChunkZ*16 + offset
}

// Region returns the region owning this candidate.
func (c Candidate) Region() RegionCoord {
	return RegionOf(c.ChunkX, c.ChunkZ)
}
