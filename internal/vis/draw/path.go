package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/vis/interact"
)

// DrawPath draws a sequence of metric points as a connected line,
// generalized from the teacher's core.Pos-and-Workspace-vertex path (a
// sequence resolved through a graph) to plain geom.Points, since there
// is no graph to resolve through here. Used by the replay viewer to
// trail a peer's recent recorded positions.
func DrawPath(gtx layout.Context, points []geom.Point, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(points) < 2 {
		return
	}

	w := width * camera.Zoom
	for i := 0; i < len(points)-1; i++ {
		x1, y1 := camera.WorldToScreen(points[i].X, points[i].Y)
		x2, y2 := camera.WorldToScreen(points[i+1].X, points[i+1].Y)
		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

func drawPathSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
