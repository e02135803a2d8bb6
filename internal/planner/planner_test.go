package planner

import (
	"testing"

	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
)

func freeGrid() *gridmap.OccupancyGrid {
	return gridmap.NewGrid()
}

func TestFindPathAroundObstacle(t *testing.T) {
	g := freeGrid()
	// A 41-cell horizontal blocked line at y=150 across columns 80..120.
	for x := 80; x <= 120; x++ {
		g.Set(gridmap.Pixel{X: x, Y: 150}, gridmap.Blocked)
	}

	start := gridmap.Pixel{X: 100, Y: 140}
	goal := gridmap.Pixel{X: 100, Y: 160}

	path := FindPath(g, start, goal)
	if len(path) == 0 {
		t.Fatal("expected a non-empty path around the obstacle")
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Fatalf("path endpoints wrong: got %v..%v, want %v..%v", path[0], path[len(path)-1], start, goal)
	}
	for _, p := range path {
		if g.At(p) == gridmap.Blocked {
			t.Fatalf("path crosses blocked cell %v", p)
		}
		if p.Y == 150 && p.X >= 80 && p.X <= 120 {
			t.Fatalf("path crosses the blocked row through the blocked columns at %v", p)
		}
	}
}

func TestFindPathUnreachableReturnsEmpty(t *testing.T) {
	g := freeGrid()
	start := gridmap.Pixel{X: 10, Y: 10}
	goal := gridmap.Pixel{X: 190, Y: 290}

	// Wall off the goal entirely.
	for x := 0; x < g.W; x++ {
		g.Set(gridmap.Pixel{X: x, Y: 200}, gridmap.Blocked)
	}

	path := FindPath(g, start, goal)
	if len(path) != 0 {
		t.Fatalf("expected empty path, got %v", path)
	}
}

func TestFindPathOptimalOnUniformGrid(t *testing.T) {
	g := freeGrid()
	start := gridmap.Pixel{X: 0, Y: 0}
	goal := gridmap.Pixel{X: 10, Y: 0}

	path := FindPath(g, start, goal)
	// Straight free run: optimal path is 11 pixels (10 unit steps).
	if len(path) != 11 {
		t.Fatalf("got path length %d, want 11", len(path))
	}
}

func TestSmoothPathPreservesEndpointsAndSubsets(t *testing.T) {
	path := []gridmap.Pixel{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 4, Y: 1}, {X: 5, Y: 2},
	}
	smoothed := SmoothPath(path)

	if smoothed[0] != path[0] {
		t.Fatalf("first point not preserved")
	}
	if smoothed[len(smoothed)-1] != path[len(path)-1] {
		t.Fatalf("last point not preserved")
	}

	set := make(map[gridmap.Pixel]bool, len(path))
	for _, p := range path {
		set[p] = true
	}
	for _, p := range smoothed {
		if !set[p] {
			t.Fatalf("smoothed point %v not in original path", p)
		}
	}
	if len(smoothed) >= len(path) {
		t.Fatalf("expected collinear run to be dropped: got %d points from %d", len(smoothed), len(path))
	}
}

func TestSmoothPathEmpty(t *testing.T) {
	if out := SmoothPath(nil); len(out) != 0 {
		t.Fatalf("expected empty output for empty input, got %v", out)
	}
}
