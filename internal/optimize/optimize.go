// Package optimize finds, for a group of monument centers, the integer
// lattice point maximizing guardian-spawn coverage inside the feasible
// intersection of their AFK disks.
package optimize

import (
	"log"

	"afkfinder/internal/config"
	"afkfinder/internal/group"
)

// Result is a group's optimized AFK point: the highest-scoring location
// found, with its total and per-monument coverage breakdown.
type Result struct {
	Group       group.Group
	X, Z        int
	Total       int
	PerMonument []int
}

// Optimize runs the full coarse-to-fine search over g's feasible region and
// returns the best point found.
func Optimize(cfg config.Config, g group.Group) Result {
	centers := centersOf(g, cfg.CenterOffset)

	minX, maxX, minZ, maxZ, ok := feasibleRectangle(centers)
	if !ok {
		// Groups already pass a centroid pre-feasibility check during
		// enumeration, so an empty rectangle here should be rare. Fall back
		// to the centroid and log rather than fail the whole group.
		log.Printf("optimize: empty feasible rectangle for group %v, falling back to centroid", g.Members)
		cx, cz := centroidOf(centers)
		total, per := scorePoint(cx, cz, centers, cfg.RequireOutside24)
		return Result{Group: g, X: cx, Z: cz, Total: total, PerMonument: per}
	}

	top := newTopHeap(cfg.KeepTop)

	for _, s := range candidateSeeds(centers, minX, maxX, minZ, maxZ) {
		total, _ := scorePoint(s.x, s.z, centers, cfg.RequireOutside24)
		top.offer(scoredPoint{x: s.x, z: s.z, total: total})
	}

	step := cfg.LocalStep
	if step < 1 {
		step = 1
	}
	for x := minX; x <= maxX; x += step {
		for z := minZ; z <= maxZ; z += step {
			if !withinAllCenters(x, z, centers) {
				continue
			}
			total, _ := scorePoint(x, z, centers, cfg.RequireOutside24)
			top.offer(scoredPoint{x: x, z: z, total: total})
		}
	}

	best := scoredPoint{total: -1}
	for _, seed := range top.all() {
		refined := refine(seed, cfg, centers)
		if refined.total > best.total {
			best = refined
		}
	}

	total, per := scorePoint(best.x, best.z, centers, cfg.RequireOutside24)
	return Result{Group: g, X: best.x, Z: best.z, Total: total, PerMonument: per}
}

// refine performs a multi-scale local search: for each descending step
// size, it walks the offsets within cfg.RefineRadius on each axis, taken
// relative to the current incumbent, and moves the incumbent as soon as a
// better point is found, so later offsets of the same pass are relative to
// the new incumbent.
func refine(seed scoredPoint, cfg config.Config, centers []center) scoredPoint {
	best := seed
	for _, step := range cfg.RefineSteps {
		if step < 1 {
			continue
		}
		for dx := -cfg.RefineRadius; dx <= cfg.RefineRadius; dx += step {
			for dz := -cfg.RefineRadius; dz <= cfg.RefineRadius; dz += step {
				x, z := best.x+dx, best.z+dz
				if !withinAllCenters(x, z, centers) {
					continue
				}
				total, _ := scorePoint(x, z, centers, cfg.RequireOutside24)
				if total > best.total {
					best = scoredPoint{x: x, z: z, total: total}
				}
			}
		}
	}
	return best
}

func centersOf(g group.Group, offset int) []center {
	out := make([]center, len(g.Members))
	for i, m := range g.Members {
		x, z := m.Center(offset)
		out[i] = center{x: x, z: z}
	}
	return out
}
