package brain

import (
	"testing"
	"time"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
	"github.com/elektrokombinacija/swarm-explore/internal/simrobot"
)

func newTestBrainAndRobot() (*Brain, *simrobot.Robot) {
	start := simrobot.Position{Point: geom.Point{X: 0, Y: 0}, Heading: 0}
	b := NewBrain(1, start)
	world := &geom.PolyMap{}
	r := simrobot.NewRobot(start, world)
	return b, r
}

func TestNewBrainInsertsSelf(t *testing.T) {
	b, _ := newTestBrainAndRobot()
	if _, ok := b.peers[1]; !ok {
		t.Fatal("expected self id present in peer table at construction")
	}
}

func TestUpdateSeedsExploration(t *testing.T) {
	b, r := newTestBrainAndRobot()
	b.Update(r)

	select {
	case ev := <-r.Events:
		b.UpdateRobotPosition(1, ev.Pos)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the seed Update to command a move")
	}

	if b.grid.At(gridmap.PosToPixel(geom.Point{X: 0, Y: 0})) != gridmap.SeenFree {
		t.Fatal("expected the starting cell to be marked seen")
	}
}

func TestWhereDoWeGoNilWhenNoFrontier(t *testing.T) {
	b, _ := newTestBrainAndRobot()
	if goal := b.whereDoWeGo(); goal != nil {
		t.Fatalf("expected nil on an all-Uncharted grid, got %v", *goal)
	}
}

func TestWhereDoWeGoPrefersCloserToFront(t *testing.T) {
	b, _ := newTestBrainAndRobot()
	b.grid.MarkSeenCircle(geom.Point{X: 0, Y: 0}, 0.1)

	goal := b.whereDoWeGo()
	if goal == nil {
		t.Fatal("expected a frontier target")
	}
	// Heading 0 puts the front anchor at (0, FrontOffset), so the chosen
	// frontier lies on the +y side of the sensed circle.
	if goal.Y <= 0 {
		t.Fatalf("expected a frontier on the robot's front (+y) side, got %v", *goal)
	}
}

func TestNotifyCollisionMarksBlockedAndBacksUp(t *testing.T) {
	b, r := newTestBrainAndRobot()
	point := geom.Point{X: 0.2, Y: 0}

	b.nextSteps = []gridmap.Pixel{{X: 1, Y: 1}}
	b.nextTargets = []gridmap.Pixel{{X: 2, Y: 2}}

	b.NotifyCollision(r, point)

	if b.grid.At(gridmap.PosToPixel(point)) != gridmap.Blocked {
		t.Fatal("expected collision cell to be Blocked")
	}
	if len(b.nextSteps) != 0 || len(b.nextTargets) != 0 {
		t.Fatal("expected pending plan cleared after a collision")
	}

	select {
	case ev := <-r.Events:
		if ev.Kind != simrobot.Reached && ev.Kind != simrobot.Collision {
			t.Fatalf("unexpected event kind %v", ev.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a backup event from NotifyCollision's forward(-0.1)")
	}
}

func TestNotifyCollisionInfersLineBetweenNearbyCollisions(t *testing.T) {
	b, r := newTestBrainAndRobot()

	b.NotifyCollision(r, geom.Point{X: 0.3, Y: 0})
	<-r.Events
	b.NotifyCollision(r, geom.Point{X: 0.35, Y: 0})
	<-r.Events

	a := gridmap.PosToPixel(geom.Point{X: 0.3, Y: 0})
	bp := gridmap.PosToPixel(geom.Point{X: 0.35, Y: 0})
	for _, px := range gridmap.BresenhamLine(a, bp) {
		if b.grid.At(px) != gridmap.Blocked {
			t.Fatalf("expected pixel %v on the inferred obstacle line to be Blocked", px)
		}
	}
}

func TestMergeMapsAppliesTable(t *testing.T) {
	b, _ := newTestBrainAndRobot()
	remote := gridmap.NewGrid()
	p := gridmap.Pixel{X: 50, Y: 50}
	remote.Set(p, gridmap.Blocked)

	b.MergeMaps(remote)

	if b.grid.At(p) != gridmap.Blocked {
		t.Fatal("expected merge to import the remote Blocked cell")
	}
}
