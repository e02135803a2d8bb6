package runloop

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elektrokombinacija/swarm-explore/internal/brain"
	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/message"
	"github.com/elektrokombinacija/swarm-explore/internal/simrobot"
	"github.com/elektrokombinacija/swarm-explore/internal/transport"
)

func newTestLoop(t *testing.T, selfID uint32) (*Loop, string) {
	t.Helper()
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.jsonl")

	writer, err := transport.NewWriter(outPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { writer.Close() })

	world := &geom.PolyMap{}
	start := simrobot.Position{Point: geom.Point{X: 0, Y: 0}, Heading: 0}
	robot := simrobot.NewRobot(start, world)
	b := brain.NewBrain(selfID, start)

	return New(selfID, b, robot, nil, writer, nil), outPath
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if sc.Text() != "" {
			lines = append(lines, sc.Text())
		}
	}
	return lines
}

func TestHandleDistantInputDedupsAndForwards(t *testing.T) {
	l, outPath := newTestLoop(t, 1)

	env := message.Envelope{
		ID:     42,
		Sender: 2,
		Pos:    message.Position{X: 1, Y: 2, Heading: 0},
		Content: message.Content{
			Kind: message.KindPublic,
			Text: "hi",
		},
	}
	b, err := message.Encode(env)
	if err != nil {
		t.Fatal(err)
	}

	l.handleDistantInput(string(b))
	l.handleDistantInput(string(b))

	if !l.seen.Known(42) {
		t.Fatal("expected message 42 to be recorded as seen")
	}

	lines := readLines(t, outPath)
	if len(lines) != 1 {
		t.Fatalf("got %d forwarded lines, want exactly 1 (duplicate must be dropped): %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "\"id\":42") {
		t.Fatalf("forwarded line missing original id: %q", lines[0])
	}

	peers := l.brain.Peers()
	pos, ok := peers[2]
	if !ok {
		t.Fatal("expected sender 2 to be added to the peer table")
	}
	if pos.Point.X != 1 || pos.Point.Y != 2 {
		t.Fatalf("got peer position %v, want (1,2)", pos.Point)
	}
}

func TestHandleDistantInputDropsMalformedLine(t *testing.T) {
	l, outPath := newTestLoop(t, 1)

	l.handleDistantInput("{not json")

	if lines := readLines(t, outPath); len(lines) != 0 {
		t.Fatalf("malformed line must never be forwarded, got %v", lines)
	}
}

func TestHandleRobotEventBroadcastsEveryEleventh(t *testing.T) {
	l, outPath := newTestLoop(t, 7)

	ev := simrobot.Event{
		Kind: simrobot.Reached,
		Pos:  simrobot.Position{Point: geom.Point{X: 0, Y: 0}, Heading: 0},
	}

	for i := 0; i < MapBroadcastInterval; i++ {
		l.handleRobotEvent(ev)
	}

	if got := l.brain.DebugCounter(); got != MapBroadcastInterval {
		t.Fatalf("got debug counter %d, want %d", got, MapBroadcastInterval)
	}

	lines := readLines(t, outPath)
	found := false
	for _, line := range lines {
		if strings.Contains(line, "\"kind\":\"map_update\"") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a map_update broadcast after %d Reached events, got %v", MapBroadcastInterval, lines)
	}
}

func TestHandleRobotEventCollisionUpdatesOwnPosition(t *testing.T) {
	l, _ := newTestLoop(t, 1)

	l.handleRobotEvent(simrobot.Event{
		Kind: simrobot.Reached,
		Pos:  simrobot.Position{Point: geom.Point{X: 0, Y: 0}, Heading: 0},
	})

	l.handleRobotEvent(simrobot.Event{
		Kind: simrobot.Collision,
		Pos:  simrobot.Position{Point: geom.Point{X: 0.2, Y: 0}, Heading: 0},
	})

	peers := l.brain.Peers()
	self := peers[1]
	if self.Point.X != 0.2 {
		t.Fatalf("got self position %v after collision, want x=0.2", self.Point)
	}
}
