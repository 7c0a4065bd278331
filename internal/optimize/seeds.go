package optimize

import "math"

// feasibleRectangle intersects every member's [cx-128, cx+128] x [cz-128,
// cz+128] square; ok is false if the intersection is empty.
func feasibleRectangle(centers []center) (minX, maxX, minZ, maxZ int, ok bool) {
	minX, maxX = centers[0].x-outerRadius, centers[0].x+outerRadius
	minZ, maxZ = centers[0].z-outerRadius, centers[0].z+outerRadius
	for _, c := range centers[1:] {
		if lo := c.x - outerRadius; lo > minX {
			minX = lo
		}
		if hi := c.x + outerRadius; hi < maxX {
			maxX = hi
		}
		if lo := c.z - outerRadius; lo > minZ {
			minZ = lo
		}
		if hi := c.z + outerRadius; hi < maxZ {
			maxZ = hi
		}
	}
	return minX, maxX, minZ, maxZ, minX <= maxX && minZ <= maxZ
}

// withinAllCenters reports whether (x, z) lies within outerRadius blocks of
// every monument center.
func withinAllCenters(x, z int, centers []center) bool {
	for _, c := range centers {
		dx, dz := int64(x-c.x), int64(z-c.z)
		if dx*dx+dz*dz > outerRadius2 {
			return false
		}
	}
	return true
}

func centroidOf(centers []center) (x, z int) {
	var sx, sz int64
	for _, c := range centers {
		sx += int64(c.x)
		sz += int64(c.z)
	}
	n := int64(len(centers))
	return int(sx / n), int(sz / n)
}

// candidateSeeds returns the centroid plus every pairwise circle-circle
// intersection of the radius-128 disks around each pair of centers,
// integer-rounded, filtered to the feasible rectangle and the
// within-all-centers predicate.
func candidateSeeds(centers []center, minX, maxX, minZ, maxZ int) []scoredPoint {
	type pt struct{ x, z int }
	seen := make(map[pt]bool)
	var pts []pt

	add := func(x, z int) {
		if x < minX || x > maxX || z < minZ || z > maxZ {
			return
		}
		if !withinAllCenters(x, z, centers) {
			return
		}
		p := pt{x, z}
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}

	cx, cz := centroidOf(centers)
	add(cx, cz)

	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			x1, z1 := float64(centers[i].x), float64(centers[i].z)
			x2, z2 := float64(centers[j].x), float64(centers[j].z)
			dx, dz := x2-x1, z2-z1
			d := math.Hypot(dx, dz)
			if d == 0 || d > 2*outerRadius {
				continue
			}
			r := float64(outerRadius)
			a := d / 2
			h2 := r*r - a*a
			if h2 < 0 {
				continue
			}
			h := math.Sqrt(h2)
			mx, mz := x1+dx/2, z1+dz/2
			// Unit vector perpendicular to (dx, dz).
			ux, uz := -dz/d, dx/d
			add(int(math.Round(mx+h*ux)), int(math.Round(mz+h*uz)))
			add(int(math.Round(mx-h*ux)), int(math.Round(mz-h*uz)))
		}
	}

	out := make([]scoredPoint, 0, len(pts))
	for _, p := range pts {
		out = append(out, scoredPoint{x: p.x, z: p.z})
	}
	return out
}
