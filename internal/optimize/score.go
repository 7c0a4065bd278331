package optimize

// Geometric constants of the monument/AFK-disk domain; these are fixed by
// the game's structure, not pipeline tunables.
const (
	afkY           = 50
	monumentYMin   = 39
	monumentYMax   = 61
	monumentBefore = 29 // bx/bz start offset: cx-29
	monumentAfter  = 28 // bx/bz end offset: cx+28 (58 columns total)
	outerRadius    = 128
	innerRadius    = 24
)

var (
	outerRadius2 = int64(outerRadius) * int64(outerRadius)
	innerRadius2 = int64(innerRadius) * int64(innerRadius)
)

// center is a monument's block-space center, the unit scorePoint operates
// over.
type center struct{ x, z int }

// scorePoint computes the total and per-monument guardian-spawn coverage of
// candidate AFK point (x, afkY, z) against every monument center, by
// reducing the 3D annulus-overlap count to a 2D horizontal-distance sweep
// over each monument's 58x58 column grid plus an integer vertical-interval
// computation per column.
func scorePoint(x, z int, centers []center, requireOutside24 bool) (total int, perMonument []int) {
	perMonument = make([]int, len(centers))
	for i, c := range centers {
		s := scoreMonument(x, z, c.x, c.z, requireOutside24)
		perMonument[i] = s
		total += s
	}
	return total, perMonument
}

func scoreMonument(x, z, cx, cz int, requireOutside24 bool) int {
	count := 0
	for bx := cx - monumentBefore; bx <= cx+monumentAfter; bx++ {
		dx := int64(bx - x)
		dx2 := dx * dx
		if dx2 > outerRadius2 {
			continue
		}
		for bz := cz - monumentBefore; bz <= cz+monumentAfter; bz++ {
			dz := int64(bz - z)
			dh2 := dx2 + dz*dz
			if dh2 > outerRadius2 {
				continue
			}

			maxAbsDy := floorSqrt(outerRadius2 - dh2)

			var minAbsDy int64
			if requireOutside24 {
				innerRemain := innerRadius2 - dh2
				if innerRemain < 0 {
					innerRemain = 0
				}
				minAbsDy = ceilSqrt(innerRemain)
			}

			count += countBy(minAbsDy, maxAbsDy)
		}
	}
	return count
}

// countBy returns |{ by in [monumentYMin, monumentYMax] : minAbsDy <= |by -
// afkY| <= maxAbsDy }|, by subtracting the inner excluded interval from the
// outer one.
func countBy(minAbsDy, maxAbsDy int64) int {
	return countAbsLE(maxAbsDy) - countAbsLE(minAbsDy-1)
}

func countAbsLE(bound int64) int {
	if bound < 0 {
		return 0
	}
	lo := int64(afkY) - bound
	hi := int64(afkY) + bound
	if lo < monumentYMin {
		lo = monumentYMin
	}
	if hi > monumentYMax {
		hi = monumentYMax
	}
	if hi < lo {
		return 0
	}
	return int(hi - lo + 1)
}
