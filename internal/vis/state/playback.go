package state

import "time"

// PlaybackState drives frame-by-frame replay of a recorded run.
// Adapted from the teacher's continuous-time PlaybackState
// (interpolating along a precomputed multi-robot solution) to a
// discrete frame index, since replay here steps through recorded
// gossip envelopes (internal/message) rather than a fixed-makespan
// path.
type PlaybackState struct {
	FrameIndex int
	MaxIndex   int // len(frames)-1; -1 if nothing was recorded
	Speed      float64
	Playing    bool

	accum      float64
	lastUpdate time.Time
}

// NewPlaybackState creates playback state over frameCount recorded frames.
func NewPlaybackState(frameCount int) *PlaybackState {
	return &PlaybackState{
		FrameIndex: 0,
		MaxIndex:   frameCount - 1,
		Speed:      1.0,
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback on/off.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		p.accum = 0
		if p.FrameIndex >= p.MaxIndex {
			p.FrameIndex = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() { p.Playing = false }

// Reset resets to the first frame.
func (p *PlaybackState) Reset() {
	p.FrameIndex = 0
	p.Playing = false
}

// Advance steps playback forward roughly Speed frames per second;
// call once per rendered UI frame while Playing.
func (p *PlaybackState) Advance() {
	if !p.Playing || p.MaxIndex < 0 {
		return
	}

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.accum += elapsed * p.Speed
	for p.accum >= 1 {
		p.accum--
		p.FrameIndex++
	}

	if p.FrameIndex >= p.MaxIndex {
		p.FrameIndex = p.MaxIndex
		p.Playing = false
	}
}

// SetIndex seeks directly to frame i, clamped to the recorded range.
func (p *PlaybackState) SetIndex(i int) {
	if i < 0 {
		i = 0
	}
	if i > p.MaxIndex {
		i = p.MaxIndex
	}
	p.FrameIndex = i
}

// StepForward advances by one frame, pausing playback.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetIndex(p.FrameIndex + 1)
}

// StepBack rewinds by one frame, pausing playback.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetIndex(p.FrameIndex - 1)
}

// SetSpeed sets the playback speed multiplier, in frames per second.
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 20 {
		speed = 20
	}
	p.Speed = speed
}

// Progress returns the current scrub position as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxIndex <= 0 {
		return 0
	}
	return float64(p.FrameIndex) / float64(p.MaxIndex)
}
