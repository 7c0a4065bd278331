package group

import (
	"sort"

	"afkfinder/internal/config"
	"afkfinder/internal/intmap"
	"afkfinder/internal/placement"
)

// spatialCellSize is the spatial hash's cell edge length in blocks.
const spatialCellSize = 256

// floorDiv is true floor division (Go's / truncates toward zero), needed
// to map negative block coordinates to spatial cells without an off-by-one
// at the origin.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func cellKey(cx, cz int) uint64 {
	return packCoord(cx, cz)
}

// spatialIndex buckets candidates by spatialCellSize cell. Built once per
// Enumerate call over an immutable snapshot of survivors and then shared
// read-only across all worker goroutines.
type spatialIndex struct {
	cells        *intmap.Map[[]placement.Candidate]
	centerOffset int
}

func buildSpatialIndex(cfg config.Config, survivors []placement.Candidate) *spatialIndex {
	cells := intmap.New[[]placement.Candidate](len(survivors))
	for _, c := range survivors {
		x, z := c.Center(cfg.CenterOffset)
		key := cellKey(floorDiv(x, spatialCellSize), floorDiv(z, spatialCellSize))
		bucket, _ := cells.Get(key)
		cells.Put(key, append(bucket, c))
	}
	return &spatialIndex{cells: cells, centerOffset: cfg.CenterOffset}
}

// neighborhood returns every candidate (including anchor itself) within
// pairwiseBlocks of anchor, drawn from anchor's cell and its eight
// neighbors, sorted deterministically by (centerX, centerZ).
func (s *spatialIndex) neighborhood(anchor placement.Candidate, pairwiseBlocks int) []placement.Candidate {
	ax, az := anchor.Center(s.centerOffset)
	acx, acz := floorDiv(ax, spatialCellSize), floorDiv(az, spatialCellSize)
	threshold2 := int64(pairwiseBlocks) * int64(pairwiseBlocks)

	var out []placement.Candidate
	for dcx := -1; dcx <= 1; dcx++ {
		for dcz := -1; dcz <= 1; dcz++ {
			bucket, ok := s.cells.Get(cellKey(acx+dcx, acz+dcz))
			if !ok {
				continue
			}
			for _, cand := range bucket {
				x, z := cand.Center(s.centerOffset)
				dx, dz := int64(x-ax), int64(z-az)
				if dx*dx+dz*dz <= threshold2 {
					out = append(out, cand)
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		xi, zi := out[i].Center(s.centerOffset)
		xj, zj := out[j].Center(s.centerOffset)
		if xi != xj {
			return xi < xj
		}
		return zi < zj
	})
	return out
}
