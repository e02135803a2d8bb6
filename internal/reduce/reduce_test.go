package reduce

import (
	"testing"
	"time"

	"github.com/elektrokombinacija/swarm-explore/internal/simrobot"
)

func TestReducerDeliversPeerAndRobotEvents(t *testing.T) {
	peerLines := make(chan string, 1)
	robotEvents := make(chan simrobot.Event, 1)
	selfEvents := make(chan Event, 1)

	r := New(peerLines, robotEvents, selfEvents)
	defer r.Close()

	peerLines <- "hello"
	robotEvents <- simrobot.Event{Kind: simrobot.Reached}

	seenLine, seenRobot := false, false
	for i := 0; i < 2; i++ {
		ev, ok := r.Next()
		if !ok {
			t.Fatal("reducer closed early")
		}
		switch ev.Kind {
		case DistantInput:
			if ev.Line != "hello" {
				t.Fatalf("got line %q, want %q", ev.Line, "hello")
			}
			seenLine = true
		case RobotMessage:
			if ev.Robot.Kind != simrobot.Reached {
				t.Fatalf("got robot kind %v, want Reached", ev.Robot.Kind)
			}
			seenRobot = true
		}
	}
	if !seenLine || !seenRobot {
		t.Fatalf("expected to see both a line and a robot event, got line=%v robot=%v", seenLine, seenRobot)
	}
}

func TestReducerPreservesPerSourceOrder(t *testing.T) {
	peerLines := make(chan string, 4)
	robotEvents := make(chan simrobot.Event)
	selfEvents := make(chan Event)

	r := New(peerLines, robotEvents, selfEvents)
	defer r.Close()

	peerLines <- "a"
	peerLines <- "b"
	peerLines <- "c"

	var got []string
	for i := 0; i < 3; i++ {
		ev, ok := r.Next()
		if !ok {
			t.Fatal("reducer closed early")
		}
		got = append(got, ev.Line)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}

func TestReducerTimesOutIfNothingSent(t *testing.T) {
	peerLines := make(chan string)
	robotEvents := make(chan simrobot.Event)
	selfEvents := make(chan Event)

	r := New(peerLines, robotEvents, selfEvents)
	defer r.Close()

	select {
	case <-timeAfter():
		// expected: nothing arrives
	case ev, ok := <-rawNext(r):
		t.Fatalf("unexpected event %v (ok=%v)", ev, ok)
	}
}

func timeAfter() <-chan time.Time {
	return time.After(50 * time.Millisecond)
}

func rawNext(r *Reducer) <-chan Event {
	ch := make(chan Event)
	go func() {
		ev, ok := r.Next()
		if ok {
			ch <- ev
		}
	}()
	return ch
}
