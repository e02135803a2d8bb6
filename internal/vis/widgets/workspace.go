// Package widgets provides Gio UI widgets for the replay viewer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/swarm-explore/internal/vis/draw"
	"github.com/elektrokombinacija/swarm-explore/internal/vis/interact"
	"github.com/elektrokombinacija/swarm-explore/internal/vis/state"
)

// ColorTrail is the recent-motion trail color for every robot.
var ColorTrail = color.NRGBA{R: 150, G: 170, B: 190, A: 140}

// Workspace is the main 2D visualization area: occupancy grid,
// frontier overlay, recorded peer trails, and current peer positions.
// Adapted from the teacher's Workspace, dropping vertex drag/select
// (there is no editable graph in this domain) down to pan/zoom only.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Layout renders the workspace.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 20, G: 22, B: 25, A: 255})

	w.handlePointerEvents(gtx)

	draw.DrawGrid(gtx, w.camera, 50, color.NRGBA{R: 35, G: 38, B: 42, A: 255})

	frame := w.state.Current()
	if frame.Grid != nil {
		draw.DrawOccupancyGrid(gtx, frame.Grid, w.camera)
		draw.DrawFrontiers(gtx, frame.Grid, w.camera)
	}

	for id := range frame.Positions {
		if trail := w.state.Trail(id); len(trail) > 1 {
			draw.DrawPath(gtx, trail, w.camera, ColorTrail, 2)
		}
	}

	draw.DrawRobots(gtx, w.state.SelfID, frame.Positions, w.camera)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(gtx, pe)
		}
	}
}
