// Package group searches for k-subsets of surviving monuments whose
// centers are pairwise close enough to share an AFK disk, using a spatial
// hash to keep the candidate search local.
package group

import (
	"sort"

	"afkfinder/internal/intmap"
	"afkfinder/internal/placement"
)

// monumentDiskRadius is the fixed AFK-disk radius (blocks) every monument
// in a group must lie within of the eventual AFK point. Unlike
// PairwiseBlocksGroup this is a geometric constant of the domain, not a
// pruning tunable.
const monumentDiskRadius = 128

// Group is a canonical k-tuple of monuments sharing a feasible AFK region,
// identified by the lexicographically sorted tuple of member centers.
type Group struct {
	Members []placement.Candidate
}

// CanonicalKey folds the group's sorted (centerX, centerZ) pairs through
// the shared splitmix64-class avalanche mixer. Two Groups with the same
// member set under the given center offset always produce the same key,
// regardless of enumeration order.
func (g Group) CanonicalKey(centerOffset int) uint64 {
	type center struct{ x, z int }
	centers := make([]center, len(g.Members))
	for i, m := range g.Members {
		x, z := m.Center(centerOffset)
		centers[i] = center{x, z}
	}
	sort.Slice(centers, func(i, j int) bool {
		if centers[i].x != centers[j].x {
			return centers[i].x < centers[j].x
		}
		return centers[i].z < centers[j].z
	})

	var h uint64
	for _, c := range centers {
		h = intmap.Mix(h ^ packCoord(c.x, c.z))
	}
	return h
}

func packCoord(x, z int) uint64 {
	return uint64(uint32(int32(x)))<<32 | uint64(uint32(int32(z)))
}

// centroid returns the integer centroid of a candidate slice's block-space
// centers; each coordinate sum is divided with Go's truncating division.
func centroid(members []placement.Candidate, centerOffset int) (cx, cz int) {
	var sx, sz int64
	for _, m := range members {
		x, z := m.Center(centerOffset)
		sx += int64(x)
		sz += int64(z)
	}
	n := int64(len(members))
	return int(sx / n), int(sz / n)
}

// centroidWithinAll reports whether the centroid of members lies within
// monumentDiskRadius of every member's center, a pre-feasibility check run
// before a group is ever handed to the optimizer.
func centroidWithinAll(members []placement.Candidate, centerOffset int) bool {
	cx, cz := centroid(members, centerOffset)
	r2 := int64(monumentDiskRadius) * int64(monumentDiskRadius)
	for _, m := range members {
		x, z := m.Center(centerOffset)
		dx, dz := int64(x-cx), int64(z-cz)
		if dx*dx+dz*dz > r2 {
			return false
		}
	}
	return true
}
