package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/swarm-explore/internal/message"
	"github.com/elektrokombinacija/swarm-explore/internal/vis/interact"
)

// Robot colors. Generalized from the teacher's per-RobotType palette
// (square/rectangle/quadcopter shapes for three robot classes) down to
// a single shape, since this spec has exactly one robot class (spec.md
// §3).
var (
	ColorSelf = color.NRGBA{R: 100, G: 200, B: 255, A: 255}
	ColorPeer = color.NRGBA{R: 140, G: 220, B: 140, A: 255}
)

// DrawRobot draws one robot as a filled circle with a heading tick.
func DrawRobot(gtx layout.Context, pos message.Position, camera *interact.Camera, self bool) {
	screenX, screenY := camera.WorldToScreen(pos.X, pos.Y)
	radius := float32(7) * camera.Zoom

	col := ColorPeer
	if self {
		col = ColorSelf
	}

	drawFilledCircle(gtx, screenX, screenY, radius, col)

	tickLen := radius * 1.8
	tx := screenX + float32(math.Sin(pos.Heading))*tickLen
	ty := screenY - float32(math.Cos(pos.Heading))*tickLen
	drawLine(gtx, screenX, screenY, tx, ty, 2, col)
}

// DrawRobots draws every peer in positions, the local robot in a
// distinct color.
func DrawRobots(gtx layout.Context, selfID uint32, positions map[uint32]message.Position, camera *interact.Camera) {
	for id, pos := range positions {
		DrawRobot(gtx, pos, camera, id == selfID)
	}
}

func drawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
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

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 12
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
