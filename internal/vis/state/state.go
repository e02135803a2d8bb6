// Package state manages the replay viewer's visualization state.
package state

import (
	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
	"github.com/elektrokombinacija/swarm-explore/internal/message"
)

// State holds replay visualization state: the recorded frame sequence
// plus a scrub position into it.
type State struct {
	SelfID   uint32
	Frames   []Frame
	Playback *PlaybackState
}

// NewState creates replay state over frames, recorded from selfID's
// own transport file pair.
func NewState(selfID uint32, frames []Frame) *State {
	return &State{
		SelfID:   selfID,
		Frames:   frames,
		Playback: NewPlaybackState(len(frames)),
	}
}

// Current returns the frame at the current scrub position, or an
// empty frame over a fresh grid if nothing has been recorded yet.
func (s *State) Current() Frame {
	if len(s.Frames) == 0 {
		return Frame{Grid: gridmap.NewGrid(), Positions: map[uint32]message.Position{}}
	}
	i := s.Playback.FrameIndex
	if i < 0 {
		i = 0
	}
	if i >= len(s.Frames) {
		i = len(s.Frames) - 1
	}
	return s.Frames[i]
}

// Trail returns id's recorded positions up to and including the
// current scrub position, oldest first, for drawing a recent-motion
// trail (analogue of the teacher's State.PathHistory).
func (s *State) Trail(id uint32) []geom.Point {
	cur := s.Playback.FrameIndex
	if cur < 0 {
		cur = 0
	}
	if cur >= len(s.Frames) {
		cur = len(s.Frames) - 1
	}

	var trail []geom.Point
	for i := 0; i <= cur; i++ {
		if p, ok := s.Frames[i].Positions[id]; ok {
			trail = append(trail, p.ToPoint())
		}
	}
	return trail
}
