package placement

import "testing"

// referenceFloorDiv is a reference floor-division, the same shape as the
// teacher's internal/world/world.go floorDiv, used here only to cross-check
// the branchy modifiedChunkCoord formulation against a simpler one.
func referenceFloorDiv(a, b int) int {
	if a < 0 {
		return (a - b + 1) / b
	}
	return a / b
}

func TestRegionOfMatchesFloorDivision(t *testing.T) {
	for c := -200; c <= 200; c++ {
		got := modifiedChunkCoord(c) / Spacing
		want := referenceFloorDiv(c, Spacing)
		if got != want {
			t.Fatalf("chunk %d: region branch formula = %d, floorDiv = %d", c, got, want)
		}
	}
}

func TestRegionOfBoundary(t *testing.T) {
	cases := []struct {
		chunk, region int
	}{
		{0, 0}, {31, 0}, {32, 1}, {-1, -1}, {-32, -1}, {-33, -2}, {63, 1}, {64, 2},
	}
	for _, c := range cases {
		r := RegionOf(c.chunk, 0)
		if r.RX != c.region {
			t.Errorf("RegionOf(%d) = %d, want %d", c.chunk, r.RX, c.region)
		}
	}
}

func TestRegionBoundsForChunkRange(t *testing.T) {
	minR, maxR := RegionBoundsForChunkRange(-65, 64)
	if minR != -3 || maxR != 2 {
		t.Fatalf("RegionBoundsForChunkRange(-65,64) = (%d,%d), want (-3,2)", minR, maxR)
	}
}
