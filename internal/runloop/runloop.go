// Package runloop implements the top-level event loop (spec.md §4.7):
// it seeds exploration with a Public greeting, then drives the brain
// strictly one event at a time off the reducer's fan-in stream,
// dispatching Reached/Collision/DistantInput per spec.md §4.7 and
// maintaining the gossip rebroadcast/dedup discipline of §4.6.
//
// Grounded on ek-roj/roj-node-go/main.go's flag-parse-then-run shape
// generalized to a select-free for/switch since the reducer already
// performs the fan-in (internal/reduce), and on
// ek-roj/roj-node-go/consensus/voter.go's seen-id rebroadcast pattern.
package runloop

import (
	"log"

	"github.com/elektrokombinacija/swarm-explore/internal/brain"
	"github.com/elektrokombinacija/swarm-explore/internal/message"
	"github.com/elektrokombinacija/swarm-explore/internal/reduce"
	"github.com/elektrokombinacija/swarm-explore/internal/simrobot"
	"github.com/elektrokombinacija/swarm-explore/internal/transport"
)

// MapBroadcastInterval is how many Reached events pass between
// unconditional MapUpdate broadcasts (spec.md §4.7 "every 11 events").
const MapBroadcastInterval = 11

// PNGHook is called after every Reached event, receiving the brain's
// current debug counter; the run loop does not know about PNG
// numbering or paths itself (spec.md §6 "-png"/"-png-every" are a
// cmd/explorer concern only).
type PNGHook func(debugCounter int)

// Loop ties the reducer, brain, robot and gossip transport together.
type Loop struct {
	selfID uint32
	brain  *brain.Brain
	robot  *simrobot.Robot
	reader *transport.PeerReader
	writer *transport.Writer
	seen   *message.Seen
	onPNG  PNGHook
}

// New constructs a Loop for selfID, wiring b, robot and the transport
// pair. onPNG may be nil to disable debug PNG hooks entirely.
func New(selfID uint32, b *brain.Brain, robot *simrobot.Robot, reader *transport.PeerReader, writer *transport.Writer, onPNG PNGHook) *Loop {
	return &Loop{
		selfID: selfID,
		brain:  b,
		robot:  robot,
		reader: reader,
		writer: writer,
		seen:   message.NewSeen(),
		onPNG:  onPNG,
	}
}

// Run blocks until the reducer's event stream is exhausted, that is,
// until every source channel has been closed. The peer reader does not
// close its channel at end of file (it keeps tailing), so Run returns
// only once that reader is closed as well. It seeds exploration with a
// Public greeting and one brain update before consuming events.
func (l *Loop) Run(selfEvents <-chan reduce.Event) error {
	r := reduce.New(l.reader.Lines(), l.robot.Events, selfEvents)
	defer r.Close()

	if err := l.broadcastPublic("hello"); err != nil {
		log.Printf("[WARN] runloop: greeting broadcast failed: %v", err)
	}
	l.brain.Update(l.robot)

	for {
		ev, ok := r.Next()
		if !ok {
			return nil
		}
		l.handle(ev)
	}
}

func (l *Loop) handle(ev reduce.Event) {
	switch ev.Kind {
	case reduce.RobotMessage:
		l.handleRobotEvent(ev.Robot)
	case reduce.DistantInput:
		l.handleDistantInput(ev.Line)
	case reduce.SelfEvent:
		// reserved; no handling defined (spec.md §4.7).
	}
}

func (l *Loop) handleRobotEvent(ev simrobot.Event) {
	switch ev.Kind {
	case simrobot.Reached:
		l.brain.UpdateRobotPosition(l.selfID, ev.Pos)
		l.brain.Update(l.robot)

		n := l.brain.IncrementDebugCounter()
		if l.onPNG != nil {
			l.onPNG(n)
		}
		if n%MapBroadcastInterval == 0 {
			if err := l.broadcastMapUpdate(); err != nil {
				log.Printf("[WARN] runloop: map update broadcast failed: %v", err)
			}
		}

	case simrobot.Collision:
		l.brain.UpdateRobotPosition(l.selfID, ev.Pos)
		l.brain.NotifyCollision(l.robot, ev.Pos.Point)
	}
}

func (l *Loop) handleDistantInput(line string) {
	env, err := message.Decode([]byte(line))
	if err != nil {
		log.Printf("[WARN] runloop: malformed peer line %q: %v", line, err)
		return
	}
	if l.seen.Known(env.ID) {
		return
	}
	l.seen.Record(env.ID)

	l.brain.UpdateRobotPosition(env.Sender, simrobot.Position{
		Point:   env.Pos.ToPoint(),
		Heading: env.Pos.Heading,
	})

	if env.Content.Kind == message.KindMapUpdate && env.Content.Grid != nil {
		l.brain.MergeMaps(env.Content.Grid.ToGrid())
	}

	if err := l.forward(env); err != nil {
		log.Printf("[WARN] runloop: forwarding message %d failed: %v", env.ID, err)
	}
}

func (l *Loop) broadcastPublic(text string) error {
	return l.send(message.Envelope{
		ID:     message.NewID(),
		Sender: l.selfID,
		Pos:    l.selfPos(),
		Content: message.Content{
			Kind: message.KindPublic,
			Text: text,
		},
	})
}

func (l *Loop) broadcastMapUpdate() error {
	return l.send(message.Envelope{
		ID:     message.NewID(),
		Sender: l.selfID,
		Pos:    l.selfPos(),
		Content: message.Content{
			Kind: message.KindMapUpdate,
			Grid: message.ToGridSnapshot(l.brain.Grid().Clone()),
		},
	})
}

func (l *Loop) selfPos() message.Position {
	peers := l.brain.Peers()
	self := peers[l.selfID]
	return message.FromPoint(self.Point, self.Heading)
}

func (l *Loop) send(env message.Envelope) error {
	l.seen.Record(env.ID)
	return l.forward(env)
}

func (l *Loop) forward(env message.Envelope) error {
	b, err := message.Encode(env)
	if err != nil {
		return err
	}
	return l.writer.WriteLine(b)
}
