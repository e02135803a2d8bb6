package gridmap

import (
	"testing"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
)

func TestRoundTripCoordinates(t *testing.T) {
	tests := []struct {
		name string
		px   Pixel
	}{
		{"origin-ish", Pixel{100, 150}},
		{"arbitrary", Pixel{110, 95}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PosToPixel(PixelToPos(tt.px))
			if got != tt.px {
				t.Fatalf("round trip got %v, want %v", got, tt.px)
			}
		})
	}
}

func TestPixelsToPosOrigin(t *testing.T) {
	p := PixelToPos(Pixel{100, 150})
	if !p.ApproxEqual(geom.Point{X: 0, Y: 0}) {
		t.Fatalf("got %v, want (0,0)", p)
	}
}

func TestPosToPixelOrigin(t *testing.T) {
	px := PosToPixel(geom.Point{X: 0, Y: 0})
	if px != (Pixel{100, 150}) {
		t.Fatalf("got %v, want (100,150)", px)
	}
}

func TestMergeTable(t *testing.T) {
	tests := []struct {
		local, remote, want CellState
	}{
		{Uncharted, Uncharted, Uncharted},
		{Uncharted, SeenFree, SeenFree},
		{Uncharted, Blocked, Blocked},
		{SeenFree, Uncharted, SeenFree},
		{SeenFree, SeenFree, SeenFree},
		{SeenFree, Blocked, Blocked},
		{Blocked, Uncharted, Blocked},
		{Blocked, SeenFree, Blocked},
		{Blocked, Blocked, Blocked},
	}
	for _, tt := range tests {
		if got := merge(tt.local, tt.remote); got != tt.want {
			t.Errorf("merge(%v,%v) = %v, want %v", tt.local, tt.remote, got, tt.want)
		}
	}
}

func TestMergeAssociative(t *testing.T) {
	states := []CellState{Uncharted, SeenFree, Blocked}
	for _, a := range states {
		for _, b := range states {
			for _, c := range states {
				left := merge(merge(a, b), c)
				right := merge(a, merge(b, c))
				if left != right {
					t.Errorf("merge not associative for (%v,%v,%v): %v != %v", a, b, c, left, right)
				}
			}
		}
	}
}

func TestBlockedMonotone(t *testing.T) {
	g := NewGrid()
	p := Pixel{10, 10}
	g.Set(p, Blocked)
	g.Merge(NewGrid()) // merging an all-Uncharted remote must not revert it
	if g.At(p) != Blocked {
		t.Fatalf("Blocked cell reverted after merge")
	}
}

func TestSeenFreeNeverDowngrades(t *testing.T) {
	g := NewGrid()
	p := Pixel{10, 10}
	g.Set(p, SeenFree)
	remote := NewGrid() // all Uncharted
	g.Merge(remote)
	if g.At(p) != SeenFree {
		t.Fatalf("SeenFree cell downgraded to %v after merging Uncharted", g.At(p))
	}
}

func TestMarkSeenCircle(t *testing.T) {
	g := NewGrid()
	g.MarkSeenCircle(geom.Point{X: 0, Y: 0}, 0.1)

	center := Pixel{100, 150}
	radiusPx := 10

	for y := center.Y - radiusPx - 2; y <= center.Y+radiusPx+2; y++ {
		for x := center.X - radiusPx - 2; x <= center.X+radiusPx+2; x++ {
			p := Pixel{x, y}
			metric := PixelToPos(p)
			dist := metric.Dist(geom.Point{X: 0, Y: 0})
			want := Uncharted
			if dist <= 0.1 {
				want = SeenFree
			}
			if got := g.At(p); got != want {
				t.Fatalf("pixel %v (dist %.4f): got %v, want %v", p, dist, got, want)
			}
		}
	}
}

func TestDetectFrontiersEmptyWhenAllUncharted(t *testing.T) {
	g := NewGrid()
	if f := g.DetectFrontiers(); len(f) != 0 {
		t.Fatalf("expected no frontiers on an all-Uncharted grid, got %d", len(f))
	}
}

func TestDetectFrontiersEmptyWhenAllBlocked(t *testing.T) {
	g := NewGrid()
	for i := range g.cells {
		g.cells[i] = Blocked
	}
	if f := g.DetectFrontiers(); len(f) != 0 {
		t.Fatalf("expected no frontiers on an all-Blocked grid, got %d", len(f))
	}
}

func TestDetectFrontiersNonEmptyAfterPartialSensing(t *testing.T) {
	g := NewGrid()
	g.MarkSeenCircle(geom.Point{X: 0, Y: 0}, 0.1)
	if f := g.DetectFrontiers(); len(f) == 0 {
		t.Fatal("expected frontiers at the boundary of the sensed circle")
	}
}

func TestDilateLeavesBorderUntouched(t *testing.T) {
	g := NewGrid()
	g.Set(Pixel{0, 0}, SeenFree)
	dilated := g.Dilate(DilationSize)
	// The border itself (within DilationSize of the edge) is left as-is,
	// i.e. Dilate never even visits row/col 0..DilationSize-1.
	if dilated.At(Pixel{0, 1}) != Uncharted {
		t.Fatalf("expected border cell left untouched")
	}
}
