// Package simrobot implements the kinematic robot simulator: a robot
// moves along a segment toward a destination, the simulator detects
// the first obstacle intersection against the ground-truth PolyMap,
// and emits a delayed Reached or Collision event proportional to the
// distance travelled.
//
// Grounded on the teacher's internal/core/robot.go (struct + Speed()
// method, generalized here to the single ROBOT_SPEED constant since
// this spec has one robot class) and internal/sim/simulator.go's
// time-based event model, replaced with a one-shot background timer
// per go_to call instead of a centralized fixed-timestep scheduler
// (spec.md §9 "Deferred robot arrival").
package simrobot

import (
	"math"
	"time"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
)

// ROBOT_SPEED is the robot's constant travel speed, in meters/second.
const ROBOT_SPEED = 1.0

// StopShortEpsilon is the distance the robot stops short of a detected
// collision point, in meters.
const StopShortEpsilon = 0.005

// Position is a point plus heading angle in radians.
type Position struct {
	Point   geom.Point
	Heading float64
}

// EventKind tags the variant of an Event.
type EventKind int

const (
	// Reached means the robot arrived at its commanded destination
	// unobstructed.
	Reached EventKind = iota
	// Collision means the robot's trajectory intersected an obstacle;
	// it stopped just short of the hit point.
	Collision
	// reserved placeholders for future event kinds, per spec.md §4.4.
	reservedA
	reservedB
)

// Event is emitted by the simulator after a travel delay proportional
// to distance covered.
type Event struct {
	Kind EventKind
	Pos  Position
}

// Robot is the kinematic simulator state: current position, the
// ground-truth world it collides against, and the channel on which it
// emits events.
type Robot struct {
	Pos    Position
	World  *geom.PolyMap
	Events chan Event
}

// NewRobot constructs a Robot at the given starting position.
func NewRobot(start Position, world *geom.PolyMap) *Robot {
	return &Robot{
		Pos:    start,
		World:  world,
		Events: make(chan Event, 16),
	}
}

// GoTo commands the robot toward destination. It forms the trajectory
// segment from the current position to destination, queries the world
// for the first intersection, and updates r.Pos immediately (the
// robot instantaneously "decides" its new state; only the Event is
// delayed, modeling travel time). The new heading is the direction of
// travel rotated by -pi/2, preserving the "robot forward is +y
// body-local" drawing convention (spec.md §9 Open Question).
func (r *Robot) GoTo(destination geom.Point) {
	trajectory := geom.Segment{A: r.Pos.Point, B: destination}
	travelVector := destination.Sub(r.Pos.Point)
	heading := travelVector.Angle() - math.Pi/2

	hit := r.World.FirstIntersection(trajectory)

	var finalPos geom.Point
	var kind EventKind
	var travelled float64

	if hit != nil {
		unitHeading := travelVector.Normalized()
		finalPos = hit.Sub(unitHeading.Scale(StopShortEpsilon))
		kind = Collision
		travelled = r.Pos.Point.Dist(*hit)
	} else {
		finalPos = destination
		kind = Reached
		travelled = r.Pos.Point.Dist(destination)
	}

	r.Pos = Position{Point: finalPos, Heading: heading}

	delay := time.Duration(travelled/ROBOT_SPEED*1000) * time.Millisecond
	emitted := r.Pos
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		r.Events <- Event{Kind: kind, Pos: emitted}
	}()
}

// Forward translates the robot by d meters along its current heading.
func (r *Robot) Forward(d float64) {
	offset := geom.Point{X: 0, Y: d}.Rotate(r.Pos.Heading)
	r.GoTo(r.Pos.Point.Add(offset))
}
