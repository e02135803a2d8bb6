package state

import (
	"bufio"
	"fmt"
	"os"

	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
	"github.com/elektrokombinacija/swarm-explore/internal/message"
)

// Frame is one gossip envelope captured from a recorded transport
// file, plus the cumulative world view after folding it in.
type Frame struct {
	Envelope  message.Envelope
	Grid      *gridmap.OccupancyGrid
	Positions map[uint32]message.Position
}

// LoadReplay reads every line of path (a recorded outbound or inbound
// transport file) and replays it frame by frame, applying each
// envelope's sender position and, for MapUpdate content, its grid
// snapshot into a running cumulative view using the same merge rule
// the run loop itself uses (spec.md §4.2/§4.7). Malformed lines are
// skipped, matching the run loop's own "log and drop" handling
// (spec.md §4.7 "Malformed lines are logged").
func LoadReplay(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file %s: %w", path, err)
	}
	defer f.Close()

	grid := gridmap.NewGrid()
	positions := make(map[uint32]message.Position)

	var frames []Frame
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		env, err := message.Decode(line)
		if err != nil {
			continue
		}

		positions[env.Sender] = env.Pos
		if env.Content.Kind == message.KindMapUpdate && env.Content.Grid != nil {
			grid.Merge(env.Content.Grid.ToGrid())
		}

		snapPositions := make(map[uint32]message.Position, len(positions))
		for id, p := range positions {
			snapPositions[id] = p
		}
		frames = append(frames, Frame{
			Envelope:  env,
			Grid:      grid.Clone(),
			Positions: snapPositions,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read replay file %s: %w", path, err)
	}
	return frames, nil
}
