package message

import (
	"testing"

	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	env := Envelope{
		ID:     12345,
		Sender: 7,
		Pos:    Position{X: 1.5, Y: -2.5, Heading: 0.3},
		Content: Content{
			Kind: KindPublic,
			Text: "hello swarm",
		},
	}

	line, err := Encode(env)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(line)
	if err != nil {
		t.Fatal(err)
	}
	if got != env {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, env)
	}
}

func TestDecodeMalformedReturnsError(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatal("expected an error decoding malformed input")
	}
}

func TestGridSnapshotRoundTrip(t *testing.T) {
	g := gridmap.NewGrid()
	g.Set(gridmap.Pixel{X: 5, Y: 5}, gridmap.Blocked)
	g.Set(gridmap.Pixel{X: 6, Y: 6}, gridmap.SeenFree)

	snap := ToGridSnapshot(g)
	back := snap.ToGrid()

	if back.At(gridmap.Pixel{X: 5, Y: 5}) != gridmap.Blocked {
		t.Fatal("blocked cell lost in round trip")
	}
	if back.At(gridmap.Pixel{X: 6, Y: 6}) != gridmap.SeenFree {
		t.Fatal("seen-free cell lost in round trip")
	}
	if back.At(gridmap.Pixel{X: 0, Y: 0}) != gridmap.Uncharted {
		t.Fatal("untouched cell should remain uncharted")
	}
}

func TestSeenDedup(t *testing.T) {
	s := NewSeen()
	if s.Known(1) {
		t.Fatal("fresh set should know nothing")
	}
	s.Record(1)
	if !s.Known(1) {
		t.Fatal("expected id 1 to be known after Record")
	}
	if s.Known(2) {
		t.Fatal("id 2 should still be unknown")
	}
}

func TestNewIDUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Fatal("expected two fresh ids to differ (this can flake astronomically rarely)")
	}
}
