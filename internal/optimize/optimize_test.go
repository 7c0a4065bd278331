package optimize

import (
	"testing"

	"afkfinder/internal/config"
	"afkfinder/internal/group"
	"afkfinder/internal/placement"
)

func TestFloorSqrt(t *testing.T) {
	cases := []struct {
		n    int64
		want int64
	}{
		{0, 0}, {1, 1}, {3, 1}, {4, 2}, {15, 3}, {16, 4},
		{16384, 128}, {16409, 128}, {1 << 40, 1 << 20},
	}
	for _, c := range cases {
		if got := floorSqrt(c.n); got != c.want {
			t.Errorf("floorSqrt(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestCeilSqrt(t *testing.T) {
	cases := []struct {
		n    int64
		want int64
	}{
		{0, 0}, {1, 1}, {2, 2}, {4, 2}, {5, 3}, {16384, 128}, {16385, 129},
	}
	for _, c := range cases {
		if got := ceilSqrt(c.n); got != c.want {
			t.Errorf("ceilSqrt(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestCountByOuterBoundaryInclusive(t *testing.T) {
	// d_h^2 == 128^2 exactly: maxAbsDy = 0, so only by == 50 counts.
	if got := countBy(0, floorSqrt(outerRadius2-outerRadius2)); got != 1 {
		t.Fatalf("outer-boundary column count = %d, want 1", got)
	}
}

func TestScoreMonumentInnerBoundaryReleasesHole(t *testing.T) {
	// At d_h^2 == 24^2 exactly, the inner exclusion just collapses to 0: a
	// column at this exact horizontal distance admits by == 50 (dy == 0),
	// which a column strictly inside 24 blocks would still exclude.
	minAbsDy := ceilSqrt(innerRadius2 - innerRadius2)
	if minAbsDy != 0 {
		t.Fatalf("minAbsDy at d_h^2=24^2 = %d, want 0", minAbsDy)
	}

	minAbsDyInside := ceilSqrt(innerRadius2 - 0)
	if minAbsDyInside != innerRadius {
		t.Fatalf("minAbsDy directly below the AFK point = %d, want %d", minAbsDyInside, innerRadius)
	}
}

func TestScorePointTotalsMatchPerMonumentSum(t *testing.T) {
	centers := []center{{0, 0}, {160, 0}}
	total, per := scorePoint(40, 0, centers, true)
	sum := 0
	for _, p := range per {
		sum += p
	}
	if total != sum {
		t.Fatalf("total=%d, sum(perMonument)=%d", total, sum)
	}
}

func TestOptimizeRespectsDiskInvariant(t *testing.T) {
	a := placement.Candidate{ChunkX: 0, ChunkZ: 0}
	b := placement.Candidate{ChunkX: 10, ChunkZ: 0} // center (160,0)
	g := group.Group{Members: []placement.Candidate{a, b}}

	cfg, err := config.New(1, config.Double, 100000, 0, 2)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	result := Optimize(cfg, g)

	sum := 0
	for _, p := range result.PerMonument {
		sum += p
	}
	if sum != result.Total {
		t.Fatalf("Total=%d != sum(PerMonument)=%d", result.Total, sum)
	}

	for _, m := range g.Members {
		cx, cz := m.Center(cfg.CenterOffset)
		dx, dz := int64(result.X-cx), int64(result.Z-cz)
		if dx*dx+dz*dz > outerRadius2 {
			t.Fatalf("result (%d,%d) is outside 128 blocks of monument center (%d,%d)", result.X, result.Z, cx, cz)
		}
	}
	if result.Total <= 0 {
		t.Fatalf("expected positive coverage for two monuments 160 blocks apart, got %d", result.Total)
	}
}

func TestFeasibleRectangleEmptyWhenFarApart(t *testing.T) {
	centers := []center{{0, 0}, {10000, 0}}
	_, _, _, _, ok := feasibleRectangle(centers)
	if ok {
		t.Fatalf("expected empty feasible rectangle for far-apart centers")
	}
}
