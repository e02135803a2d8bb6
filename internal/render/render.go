// Package render draws a debug PNG of the occupancy grid, frontier
// set and known robot/peer positions. Collision points are not drawn
// as such; they show only as Blocked cells of the grid. It is a pure
// function of core state, out of the exploration core's scope proper
// (spec.md §1) but specified at its interface: it never mutates a
// grid, robot, or brain, only reads them.
//
// Grounded on internal/vis/draw/*.go's draw-from-pure-state shape,
// swapping Gio's retained-mode drawing ops for
// github.com/fogleman/gg's immediate-mode canvas (declared dependency
// of daoran-rdk/go.mod), since a PNG export has no Gio app.Window to
// attach to.
package render

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
)

var (
	colorUncharted = [3]float64{0.10, 0.10, 0.12}
	colorSeenFree  = [3]float64{0.85, 0.85, 0.85}
	colorBlocked   = [3]float64{0.75, 0.15, 0.15}
	colorFrontier  = [3]float64{0.95, 0.75, 0.10}
	colorSelf      = [3]float64{0.15, 0.55, 0.95}
	colorPeer      = [3]float64{0.45, 0.85, 0.45}
)

// Scene is the complete pure-state snapshot rendered into one PNG.
type Scene struct {
	Grid    *gridmap.OccupancyGrid
	SelfID  uint32
	Peers   map[uint32]geom.Point
	Headers map[uint32]float64
}

// DrawPNG renders scene to path. Every cell is painted by state, the
// raw-grid frontier overlay is drawn on top (spec.md §9: raw
// definition is for debug visualization only, never planning), and
// every known peer is marked, the local robot in a distinct color.
func DrawPNG(scene Scene, path string) error {
	g := scene.Grid
	dc := gg.NewContext(g.W, g.H)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := gridmap.Pixel{X: x, Y: y}
			col := cellColor(g.At(p))
			dc.SetRGB(col[0], col[1], col[2])
			dc.SetPixel(x, y)
		}
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := gridmap.Pixel{X: x, Y: y}
			if g.RawIsFrontier(p) {
				dc.SetRGB(colorFrontier[0], colorFrontier[1], colorFrontier[2])
				dc.SetPixel(x, y)
			}
		}
	}

	for id, pos := range scene.Peers {
		px := gridmap.PosToPixel(pos)
		col := colorPeer
		radius := 3.0
		if id == scene.SelfID {
			col = colorSelf
			radius = 4.0
		}
		dc.SetRGB(col[0], col[1], col[2])
		dc.DrawCircle(float64(px.X), float64(px.Y), radius)
		dc.Fill()
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save debug png %s: %w", path, err)
	}
	return nil
}

func cellColor(s gridmap.CellState) [3]float64 {
	switch s {
	case gridmap.SeenFree:
		return colorSeenFree
	case gridmap.Blocked:
		return colorBlocked
	default:
		return colorUncharted
	}
}
