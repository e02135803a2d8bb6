// Package reduce fans the three asynchronous event sources (peer
// input, robot events, self events) into a single ordered stream that
// the run loop consumes one event at a time.
//
// Grounded on github.com/niceyeti/channerics/channels's generic
// Merge/OrDone combinators, as used in
// niceyeti-tabular/reinforcement/learning.go
// (`channerics.Merge(done, workers...)`) and
// niceyeti-tabular/server/fastview/fastview.go
// (`channerics.OrDone[DataModel](vb.done, vb.source)`).
package reduce

import (
	channerics "github.com/niceyeti/channerics/channels"

	"github.com/elektrokombinacija/swarm-explore/internal/simrobot"
)

// Kind tags which source produced an Event.
type Kind int

const (
	// DistantInput carries one raw line read from the peer transport
	// file.
	DistantInput Kind = iota
	// RobotMessage carries a Reached/Collision event forwarded from
	// the local robot simulator.
	RobotMessage
	// SelfEvent is a passthrough reserved for future use (spec.md
	// §4.7).
	SelfEvent
)

// Event is one item flowing through the reducer.
type Event struct {
	Kind  Kind
	Line  string
	Robot simrobot.Event
}

// Reducer merges the three input channels into a single ordered
// stream. Within a single source, delivery order is preserved; across
// sources no ordering is promised (spec.md §5).
type Reducer struct {
	done   chan struct{}
	merged <-chan Event
}

// New wires peerLines, robotEvents and selfEvents into a single
// reducer. Each input channel should be closed by its owner when that
// source is exhausted; Next() fails only once every source has closed.
func New(peerLines <-chan string, robotEvents <-chan simrobot.Event, selfEvents <-chan Event) *Reducer {
	done := make(chan struct{})

	peerOut := mapChan(done, peerLines, func(line string) Event {
		return Event{Kind: DistantInput, Line: line}
	})
	robotOut := mapChan(done, robotEvents, func(ev simrobot.Event) Event {
		return Event{Kind: RobotMessage, Robot: ev}
	})
	selfOut := channerics.OrDone(done, selfEvents)

	merged := channerics.Merge(done, peerOut, robotOut, selfOut)

	return &Reducer{done: done, merged: merged}
}

// Next blocks until the next event across all sources is available,
// returning ok=false once every source has closed.
func (r *Reducer) Next() (Event, bool) {
	ev, ok := <-r.merged
	return ev, ok
}

// Close releases the reducer's internal fan-in goroutines.
func (r *Reducer) Close() {
	close(r.done)
}

func mapChan[In, Out any](done <-chan struct{}, in <-chan In, f func(In) Out) <-chan Out {
	out := make(chan Out)
	go func() {
		defer close(out)
		for v := range channerics.OrDone(done, in) {
			select {
			case out <- f(v):
			case <-done:
				return
			}
		}
	}()
	return out
}
