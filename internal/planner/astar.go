// Package planner implements A* search over the occupancy grid with
// 8-connectivity and a Euclidean heuristic, plus a collinearity-based
// path smoother.
//
// Grounded on the teacher's internal/algo/astar.go: a container/heap
// priority queue of nodes carrying parent pointers, generalized from
// graph space-time search to grid search with an explicit parent-index
// arena (spec.md §9 "Parent pointers in A*") instead of live *node
// pointers, so path reconstruction never owns a pointer cycle.
package planner

import (
	"container/heap"
	"log"
	"math"

	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
)

// node is one entry in the search-tree arena.
type node struct {
	pixel  gridmap.Pixel
	g      float64
	f      float64
	parent int // index into the arena, or -1 for the start node
	index  int // heap index, maintained by container/heap
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	// Deterministic tie-break: pixel x then y.
	if h[i].pixel.X != h[j].pixel.X {
		return h[i].pixel.X < h[j].pixel.X
	}
	return h[i].pixel.Y < h[j].pixel.Y
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

var eightOffsets = []gridmap.Pixel{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

func heuristic(a, b gridmap.Pixel) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}


// FindPath runs 8-connected A* from start to goal over grid, returning
// the sequence of pixels from start to goal inclusive, or an empty
// path if no route exists (goal unreachable, or out of bounds — the
// search is attempted regardless and simply fails).
func FindPath(grid *gridmap.OccupancyGrid, start, goal gridmap.Pixel) []gridmap.Pixel {
	dist := make(map[gridmap.Pixel]float64)
	arenaIndex := make(map[gridmap.Pixel]int)
	var arena []*node

	open := &nodeHeap{}
	heap.Init(open)

	startNode := &node{pixel: start, g: 0, f: heuristic(start, goal), parent: -1}
	arena = append(arena, startNode)
	arenaIndex[start] = 0
	dist[start] = 0
	heap.Push(open, startNode)

	closed := make(map[gridmap.Pixel]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if closed[current.pixel] {
			continue
		}
		closed[current.pixel] = true

		if current.pixel == goal {
			return reconstruct(arena, arenaIndex[current.pixel])
		}

		for _, off := range eightOffsets {
			neighbor := gridmap.Pixel{X: current.pixel.X + off.X, Y: current.pixel.Y + off.Y}
			if !grid.InBounds(neighbor) || grid.At(neighbor) == gridmap.Blocked {
				continue
			}

			tentativeG := current.g + 1
			if existing, ok := dist[neighbor]; ok && tentativeG >= existing {
				continue
			}

			dist[neighbor] = tentativeG
			idx, known := arenaIndex[neighbor]
			n := &node{
				pixel:  neighbor,
				g:      tentativeG,
				f:      tentativeG + heuristic(neighbor, goal),
				parent: arenaIndex[current.pixel],
			}
			if known {
				arena[idx] = n
			} else {
				idx = len(arena)
				arena = append(arena, n)
				arenaIndex[neighbor] = idx
			}
			heap.Push(open, n)
		}
	}

	log.Printf("[ERROR] planner: no path from %v to %v", start, goal)
	return nil
}

func reconstruct(arena []*node, goalIdx int) []gridmap.Pixel {
	var path []gridmap.Pixel
	for i := goalIdx; i != -1; i = arena[i].parent {
		path = append(path, arena[i].pixel)
	}
	// path was built goal->start; reverse it.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
