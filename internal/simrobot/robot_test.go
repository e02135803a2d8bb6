package simrobot

import (
	"testing"
	"time"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
)

func TestGoToReachedWhenUnobstructed(t *testing.T) {
	world := &geom.PolyMap{}
	r := NewRobot(Position{Point: geom.Point{X: 0, Y: 0}}, world)

	r.GoTo(geom.Point{X: 0, Y: 1})

	select {
	case ev := <-r.Events:
		if ev.Kind != Reached {
			t.Fatalf("got kind %v, want Reached", ev.Kind)
		}
		if !ev.Pos.Point.ApproxEqual(geom.Point{X: 0, Y: 1}) {
			t.Fatalf("got pos %v, want (0,1)", ev.Pos.Point)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Reached event")
	}
}

func TestGoToCollisionStopsShortOfObstacle(t *testing.T) {
	world := &geom.PolyMap{Polygons: []geom.Polygon{
		{Points: []geom.Point{{X: -1, Y: 1}, {X: 1, Y: 1}}, Closed: false},
	}}
	r := NewRobot(Position{Point: geom.Point{X: 0, Y: 0}}, world)

	r.GoTo(geom.Point{X: 0, Y: 2})

	select {
	case ev := <-r.Events:
		if ev.Kind != Collision {
			t.Fatalf("got kind %v, want Collision", ev.Kind)
		}
		if ev.Pos.Point.Y >= 1 {
			t.Fatalf("expected robot to stop short of y=1, got %v", ev.Pos.Point)
		}
		if 1-ev.Pos.Point.Y > StopShortEpsilon*2 {
			t.Fatalf("expected robot to stop just short of the obstacle, got %v", ev.Pos.Point)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Collision event")
	}
}

func TestForwardUsesHeading(t *testing.T) {
	world := &geom.PolyMap{}
	r := NewRobot(Position{Point: geom.Point{X: 0, Y: 0}, Heading: 0}, world)

	r.Forward(1.0)

	<-r.Events
	// Heading 0 leaves body-local +y unrotated, so forward(1) moves the
	// robot 1m along world +y.
	if r.Pos.Point.Dist(geom.Point{X: 0, Y: 0}) < 0.99 {
		t.Fatalf("expected robot to move ~1m, got %v", r.Pos.Point)
	}
	if !r.Pos.Point.ApproxEqual(geom.Point{X: 0, Y: 1}) {
		t.Fatalf("expected forward(1) at heading 0 to reach (0,1), got %v", r.Pos.Point)
	}
}
