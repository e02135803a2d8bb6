// Package message defines the gossip envelope exchanged between
// robots: an identifier, sender, position at send time, and a tagged
// content variant, plus its line-delimited text serialization.
//
// Grounded directly on ek-roj/roj-node-go/transport/udp.go's Message
// struct and json.Marshal/Unmarshal pattern, substituting a
// line-delimited file boundary for that repo's UDP datagram boundary,
// and on ek-roj/roj-node-go/consensus/voter.go's uuid.New() use for
// generating identifiers (folded to uint32 here per spec.md's wire
// type).
package message

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
)

// ContentKind tags which variant Content carries.
type ContentKind string

const (
	KindPublic    ContentKind = "public"
	KindPrivate   ContentKind = "private"
	KindMapUpdate ContentKind = "map_update"
)

// Content is the tagged envelope payload. Exactly one of the fields
// relevant to Kind is populated.
type Content struct {
	Kind ContentKind `json:"kind"`

	// Public / Private
	Text string `json:"text,omitempty"`

	// Private only
	Target uint32 `json:"target,omitempty"`

	// MapUpdate only: a flattened grid snapshot.
	Grid *GridSnapshot `json:"grid,omitempty"`
}

// GridSnapshot is the wire form of an OccupancyGrid: dimensions plus
// a flat array of cell-state bytes (spec.md §3: "serialized as a
// single byte 0/1/2").
type GridSnapshot struct {
	W     int    `json:"w,omitempty"`
	H     int    `json:"h,omitempty"`
	Cells []byte `json:"cells,omitempty"`
}

// ToGridSnapshot captures a grid for wire transmission.
func ToGridSnapshot(g *gridmap.OccupancyGrid) *GridSnapshot {
	snap := &GridSnapshot{W: g.W, H: g.H, Cells: make([]byte, g.W*g.H)}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			snap.Cells[y*g.W+x] = byte(g.At(gridmap.Pixel{X: x, Y: y}))
		}
	}
	return snap
}

// ToGrid reconstructs an OccupancyGrid from a wire snapshot.
func (s *GridSnapshot) ToGrid() *gridmap.OccupancyGrid {
	g := gridmap.NewGrid()
	for y := 0; y < s.H && y < g.H; y++ {
		for x := 0; x < s.W && x < g.W; x++ {
			g.Set(gridmap.Pixel{X: x, Y: y}, gridmap.CellState(s.Cells[y*s.W+x]))
		}
	}
	return g
}

// Position is the wire form of a sender's position at send time.
type Position struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

func FromPoint(p geom.Point, heading float64) Position {
	return Position{X: p.X, Y: p.Y, Heading: heading}
}

func (p Position) ToPoint() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// Envelope is one gossip message.
type Envelope struct {
	ID      uint32  `json:"id"`
	Sender  uint32  `json:"sender"`
	Pos     Position `json:"pos"`
	Content Content `json:"content"`
}

// NewID generates a random 32-bit message identifier by folding the
// first four bytes of a fresh UUIDv4 (ek-roj/roj-node-go/consensus's
// uuid.New() idiom, adapted to this spec's u32 wire width).
func NewID() uint32 {
	id := uuid.New()
	return binary.LittleEndian.Uint32(id[:4])
}

// Encode serializes an envelope as a single line of JSON (no trailing
// newline).
func Encode(e Envelope) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return b, nil
}

// Decode parses one line of JSON into an Envelope. Malformed lines
// return an error for the caller to log (spec.md §4.6).
func Decode(line []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(line, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}
