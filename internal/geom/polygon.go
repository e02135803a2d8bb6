package geom

// Polygon is an ordered sequence of points describing the boundary of a
// static obstacle. If Closed is true and there are at least 3 points,
// the last edge wraps from the final point back to the first.
type Polygon struct {
	Points []Point
	Closed bool
}

// Segments returns the polygon's edges in order.
func (p Polygon) Segments() []Segment {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, 0, n)
	for i := 0; i < n-1; i++ {
		edges = append(edges, Segment{A: p.Points[i], B: p.Points[i+1]})
	}
	if p.Closed && n >= 3 {
		edges = append(edges, Segment{A: p.Points[n-1], B: p.Points[0]})
	}
	return edges
}

// PolyMap is the set of static polygons making up the ground-truth world.
type PolyMap struct {
	Polygons []Polygon
}

// FirstIntersection returns the intersection point with the smallest
// squared distance from trajectory.A across every edge of every polygon
// in the map, or nil if the trajectory hits nothing.
func (m PolyMap) FirstIntersection(trajectory Segment) *Point {
	var best *Point
	bestSq := 0.0

	for _, poly := range m.Polygons {
		for _, edge := range poly.Segments() {
			hit := trajectory.Intersect(edge)
			if hit == nil {
				continue
			}
			sq := trajectory.A.SqDist(*hit)
			if best == nil || sq < bestSq {
				h := *hit
				best = &h
				bestSq = sq
			}
		}
	}
	return best
}
