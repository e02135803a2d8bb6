package gridmap

import (
	"math"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
)

// Pixel is an integer pixel coordinate into the occupancy grid.
type Pixel struct {
	X, Y int
}

// OccupancyGrid is a fixed-size 2-D array of CellState, the robot's
// evolving belief about the static world.
type OccupancyGrid struct {
	W, H  int
	cells []CellState
}

// NewGrid returns a grid of the normative dimensions, entirely Uncharted.
func NewGrid() *OccupancyGrid {
	return &OccupancyGrid{
		W:     WidthPx,
		H:     HeightPx,
		cells: make([]CellState, WidthPx*HeightPx),
	}
}

func (g *OccupancyGrid) idx(p Pixel) (int, bool) {
	if p.X < 0 || p.X >= g.W || p.Y < 0 || p.Y >= g.H {
		return 0, false
	}
	return p.Y*g.W + p.X, true
}

// At returns the state of the cell at p, or Blocked if p is out of
// bounds (treated as impassable terrain by the planner).
func (g *OccupancyGrid) At(p Pixel) CellState {
	i, ok := g.idx(p)
	if !ok {
		return Blocked
	}
	return g.cells[i]
}

// InBounds reports whether p addresses a real cell.
func (g *OccupancyGrid) InBounds(p Pixel) bool {
	_, ok := g.idx(p)
	return ok
}

// Set unconditionally sets the state of the cell at p. Out-of-bounds
// writes are ignored.
func (g *OccupancyGrid) Set(p Pixel, s CellState) {
	if i, ok := g.idx(p); ok {
		g.cells[i] = s
	}
}

// Clone returns an independent by-value copy of the grid, used when
// sending a MapUpdate snapshot across the message boundary (spec.md §9
// "Grid ownership").
func (g *OccupancyGrid) Clone() *OccupancyGrid {
	cp := &OccupancyGrid{W: g.W, H: g.H, cells: make([]CellState, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}

// PosToPixel converts a metric point to its pixel coordinate.
//
//	pixel_x = round((x + CENTER_X) * PPM)
//	pixel_y = round((-y + CENTER_Y) * PPM)
func PosToPixel(p geom.Point) Pixel {
	return Pixel{
		X: int(math.Round((p.X + CenterX) * PPM)),
		Y: int(math.Round((-p.Y + CenterY) * PPM)),
	}
}

// PixelToPos is the inverse of PosToPixel.
func PixelToPos(px Pixel) geom.Point {
	return geom.Point{
		X: float64(px.X)/PPM - CenterX,
		Y: -(float64(px.Y)/PPM - CenterY),
	}
}

// MarkSeenCircle sets every Uncharted cell within radius meters of
// center to SeenFree. Blocked and already-SeenFree cells are left
// untouched.
func (g *OccupancyGrid) MarkSeenCircle(center geom.Point, radius float64) {
	c := PosToPixel(center)
	radiusPx := int(math.Ceil(radius * PPM))

	for dy := -radiusPx; dy <= radiusPx; dy++ {
		for dx := -radiusPx; dx <= radiusPx; dx++ {
			px := Pixel{X: c.X + dx, Y: c.Y + dy}
			i, ok := g.idx(px)
			if !ok {
				continue
			}
			if g.cells[i] != Uncharted {
				continue
			}
			metric := PixelToPos(px)
			if metric.Dist(center) <= radius {
				g.cells[i] = SeenFree
			}
		}
	}
}

// Merge applies the §4.2 merge table element-wise, mutating g in
// place with information from remote.
func (g *OccupancyGrid) Merge(remote *OccupancyGrid) {
	n := len(g.cells)
	if len(remote.cells) != n {
		// Defensive: dimensions must be constant for a process lifetime
		// (spec.md §3 invariant); a mismatched remote grid is ignored.
		return
	}
	for i := 0; i < n; i++ {
		g.cells[i] = merge(g.cells[i], remote.cells[i])
	}
}

// Dilate returns a new grid in which every Uncharted cell with any
// SeenFree cell in its (2*size+1)-square neighborhood becomes SeenFree.
// Cells within size of the border are left untouched.
func (g *OccupancyGrid) Dilate(size int) *OccupancyGrid {
	out := g.Clone()

	for y := size; y < g.H-size; y++ {
		for x := size; x < g.W-size; x++ {
			p := Pixel{X: x, Y: y}
			if g.At(p) != Uncharted {
				continue
			}
			if g.anySeenFreeInSquare(p, size) {
				out.Set(p, SeenFree)
			}
		}
	}
	return out
}

func (g *OccupancyGrid) anySeenFreeInSquare(center Pixel, size int) bool {
	for dy := -size; dy <= size; dy++ {
		for dx := -size; dx <= size; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.At(Pixel{X: center.X + dx, Y: center.Y + dy}) == SeenFree {
				return true
			}
		}
	}
	return false
}

var eightNeighborOffsets = []Pixel{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// IsFrontier reports whether p, evaluated on a dilated grid, is
// Uncharted with at least one SeenFree 8-neighbor. Planning always
// calls this on the output of Dilate (spec.md §9 Open Question).
func (g *OccupancyGrid) IsFrontier(p Pixel) bool {
	if g.At(p) != Uncharted {
		return false
	}
	for _, off := range eightNeighborOffsets {
		if g.At(Pixel{X: p.X + off.X, Y: p.Y + off.Y}) == SeenFree {
			return true
		}
	}
	return false
}

// RawIsFrontier is the raw-grid definition (SeenFree cell with an
// Uncharted neighbor) used only by the debug visualizer, never by the
// planner (spec.md §9).
func (g *OccupancyGrid) RawIsFrontier(p Pixel) bool {
	if g.At(p) != SeenFree {
		return false
	}
	for _, off := range eightNeighborOffsets {
		if g.At(Pixel{X: p.X + off.X, Y: p.Y + off.Y}) == Uncharted {
			return true
		}
	}
	return false
}

// DetectFrontiers returns the metric coordinates of every frontier
// pixel on the dilated grid.
func (g *OccupancyGrid) DetectFrontiers() []geom.Point {
	dilated := g.Dilate(DilationSize)
	var out []geom.Point
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := Pixel{X: x, Y: y}
			if dilated.IsFrontier(p) {
				out = append(out, PixelToPos(p))
			}
		}
	}
	return out
}
