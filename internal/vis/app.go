// Package vis implements a Gio-based read-only replay viewer over a
// recorded transport file (spec.md §6 "replay mode"). Adapted from the
// teacher's CBS-solution visualizer: the same App/Camera/widget shape,
// redrawing an occupancy grid, frontier set and robot positions
// instead of a MAPF-HET workspace/CBS tree.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/swarm-explore/internal/vis/interact"
	"github.com/elektrokombinacija/swarm-explore/internal/vis/state"
	"github.com/elektrokombinacija/swarm-explore/internal/vis/widgets"
)

// App is the replay viewer application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
	toolbar   *widgets.Toolbar
	camera    *interact.Camera
}

// NewApp creates a replay viewer over frames, recorded from selfID's
// transport file.
func NewApp(selfID uint32, frames []state.Frame) *App {
	th := material.NewTheme()
	st := state.NewState(selfID, frames)
	camera := interact.NewCamera()

	return &App{
		state:     st,
		theme:     th,
		workspace: widgets.NewWorkspace(st, camera),
		timeline:  widgets.NewTimeline(st),
		toolbar:   widgets.NewToolbar(st),
		camera:    camera,
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameHome:
		a.state.Playback.Reset()
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.workspace.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
