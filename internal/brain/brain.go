// Package brain implements the exploration brain: it owns the local
// robot's occupancy grid, peer table, collision history and pending
// plan, picks frontier targets biased toward the robot's heading and
// away from peers, dispatches the planner and simulator, and merges
// gossiped peer maps.
//
// Grounded on the teacher's internal/bridge/field_bridge.go (an
// actor owning shared state and reacting to peer/field updates) and
// internal/algo/potential_field.go's RepulsiveField accumulation,
// adapted here from an inverse-distance falloff over workspace
// vertices to the spec's exponential falloff over frontier pixels.
package brain

import (
	"log"
	"math"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
	"github.com/elektrokombinacija/swarm-explore/internal/planner"
	"github.com/elektrokombinacija/swarm-explore/internal/simrobot"
)

// CollisionMergeDistance is the distance within which two collisions
// are treated as endpoints of a linear obstacle (spec.md §3/§6).
const CollisionMergeDistance = 0.1

// SenseRadius is the radius marked SeenFree around a swept waypoint or
// the robot's current position (spec.md §4.5/§6).
const SenseRadius = 0.1

// FrontOffset is the distance in front of the robot used as the
// proximity anchor in where-do-we-go (spec.md §4.5/§6).
const FrontOffset = 0.05

// BackupDistance is how far the robot backs up after a collision
// (spec.md §4.5: robot.forward(-0.1)).
const BackupDistance = -0.1

// Brain is the single-threaded exploration state machine. It is only
// ever driven from the run loop's one goroutine (spec.md §5); no
// internal locking is used.
type Brain struct {
	selfID uint32
	debug  int

	peers      map[uint32]simrobot.Position
	collisions []geom.Point
	grid       *gridmap.OccupancyGrid

	nextTargets []gridmap.Pixel // reversed; last element is next goal
	nextSteps   []gridmap.Pixel // raw A* path, forward order
}

// NewBrain constructs a brain for selfID, inserting the robot's own
// starting position into the peer table (spec.md §3 invariant: "the
// local robot's own entry is always present").
func NewBrain(selfID uint32, start simrobot.Position) *Brain {
	b := &Brain{
		selfID: selfID,
		peers:  make(map[uint32]simrobot.Position),
		grid:   gridmap.NewGrid(),
	}
	b.peers[selfID] = start
	return b
}

// Grid exposes the occupancy grid for the run loop's MapUpdate
// broadcasts (by-value copies only; see Grid.Clone).
func (b *Brain) Grid() *gridmap.OccupancyGrid { return b.grid }

// IncrementDebugCounter advances the brain's debug counter (spec.md
// §4.5 "Owns: ... debug counter") and returns its new value. The run
// loop calls this once per Reached event to drive the every-11th
// MapUpdate broadcast and debug PNG numbering (spec.md §4.7).
func (b *Brain) IncrementDebugCounter() int {
	b.debug++
	return b.debug
}

// DebugCounter reads the current debug counter without advancing it.
func (b *Brain) DebugCounter() int { return b.debug }

// Peers exposes a snapshot of the peer table, read by the run loop for
// the local robot's own position and by the debug renderer.
func (b *Brain) Peers() map[uint32]simrobot.Position {
	snap := make(map[uint32]simrobot.Position, len(b.peers))
	for k, v := range b.peers {
		snap[k] = v
	}
	return snap
}

func (b *Brain) self() simrobot.Position {
	pos, ok := b.peers[b.selfID]
	if !ok {
		// spec.md §4.5/§7: missing self from the peer table is a
		// programmer error, not a recoverable condition.
		panic("brain: local robot missing from its own peer table")
	}
	return pos
}

// UpdateRobotPosition upserts a peer's latest known position,
// including the local robot's own (spec.md §4.5).
func (b *Brain) UpdateRobotPosition(id uint32, pos simrobot.Position) {
	b.peers[id] = pos
}

// MergeMaps applies the §4.2 merge rule, absorbing a gossiped remote
// grid snapshot into the local belief.
func (b *Brain) MergeMaps(remote *gridmap.OccupancyGrid) {
	b.grid.Merge(remote)
}

// Update is called whenever a Reached event arrives: it sweeps the
// just-travelled portion of the pending raw path into the grid, then
// either advances to the next smoothed waypoint or plans a fresh one.
func (b *Brain) Update(robot *simrobot.Robot) {
	current := b.self().Point

	for len(b.nextSteps) > 0 {
		step := b.nextSteps[0]
		stepPos := gridmap.PixelToPos(step)
		if stepPos.SqDist(current) < 0.01 {
			break
		}
		b.grid.MarkSeenCircle(stepPos, SenseRadius)
		b.nextSteps = b.nextSteps[1:]
	}
	b.grid.MarkSeenCircle(current, SenseRadius)

	if len(b.nextTargets) > 0 {
		b.goToNextTarget(robot)
		return
	}

	goal := b.whereDoWeGo()
	if goal == nil {
		log.Printf("[WARN] brain: nowhere to go")
		return
	}

	startPx := gridmap.PosToPixel(current)
	goalPx := gridmap.PosToPixel(*goal)

	rawPath := planner.FindPath(b.grid, startPx, goalPx)
	if len(rawPath) == 0 {
		log.Printf("[ERROR] brain: no path to frontier target %v, marking it blocked", goalPx)
		b.grid.Set(goalPx, gridmap.Blocked)
		return
	}

	b.nextSteps = rawPath
	b.nextTargets = reverseSkipFirst(planner.SmoothPath(rawPath))

	if len(b.nextTargets) > 0 {
		b.goToNextTarget(robot)
	}
}

func (b *Brain) goToNextTarget(robot *simrobot.Robot) {
	n := len(b.nextTargets)
	target := b.nextTargets[n-1]
	b.nextTargets = b.nextTargets[:n-1]
	robot.GoTo(gridmap.PixelToPos(target))
}

// reverseSkipFirst drops the smoothed path's leading point (the
// robot's current position, already occupied) and reverses the rest
// so its last element is the next waypoint to visit (spec.md §3
// "Pending plan").
func reverseSkipFirst(smoothed []gridmap.Pixel) []gridmap.Pixel {
	if len(smoothed) <= 1 {
		return nil
	}
	rest := smoothed[1:]
	out := make([]gridmap.Pixel, len(rest))
	for i, p := range rest {
		out[len(rest)-1-i] = p
	}
	return out
}

// whereDoWeGo picks the frontier point minimizing proximity to a
// point FrontOffset meters in front of the robot plus an exponential
// repulsion from every other known peer (spec.md §4.5). Returns nil
// if no frontier exists.
func (b *Brain) whereDoWeGo() *geom.Point {
	self := b.self()
	forward := geom.Point{X: 0, Y: FrontOffset}.Rotate(self.Heading)
	front := self.Point.Add(forward)

	frontiers := b.grid.DetectFrontiers()
	if len(frontiers) == 0 {
		return nil
	}

	var best *geom.Point
	bestCost := math.Inf(1)

	for i := range frontiers {
		p := frontiers[i]
		cost := p.SqDist(front)
		for id, peer := range b.peers {
			if id == b.selfID {
				continue
			}
			cost += math.Exp(-p.Dist(peer.Point))
		}
		if cost < bestCost {
			bestCost = cost
			best = &frontiers[i]
		}
	}
	return best
}

// NotifyCollision registers a collision at point, inferring a linear
// obstacle between it and any earlier collision within
// CollisionMergeDistance, marks the collision cell itself Blocked,
// clears the pending plan so the next Update re-plans, and backs the
// robot away from the obstacle (spec.md §4.5).
func (b *Brain) NotifyCollision(robot *simrobot.Robot, point geom.Point) {
	for _, earlier := range b.collisions {
		if earlier.Dist(point) <= CollisionMergeDistance {
			a := gridmap.PosToPixel(earlier)
			bPix := gridmap.PosToPixel(point)
			for _, px := range gridmap.BresenhamLine(a, bPix) {
				b.grid.Set(px, gridmap.Blocked)
			}
		}
	}
	b.collisions = append(b.collisions, point)

	b.grid.Set(gridmap.PosToPixel(point), gridmap.Blocked)

	b.nextSteps = nil
	b.nextTargets = nil

	robot.Forward(BackupDistance)
}
