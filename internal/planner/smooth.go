package planner

import (
	"github.com/elektrokombinacija/swarm-explore/internal/geom"
	"github.com/elektrokombinacija/swarm-explore/internal/gridmap"
)

// CollinearityThreshold is the dot-product-of-unit-vectors threshold
// above which an interior waypoint is considered non-turning and
// dropped by SmoothPath.
const CollinearityThreshold = 0.98

// SmoothPath drops interior points whose direction of travel does not
// change, retaining a point b (with predecessor a and successor c)
// iff |normalize(c-a)·normalize(b-a)| < CollinearityThreshold. The
// first and last points are always kept. An empty path maps to an
// empty output.
func SmoothPath(path []gridmap.Pixel) []gridmap.Pixel {
	if len(path) == 0 {
		return nil
	}
	if len(path) <= 2 {
		out := make([]gridmap.Pixel, len(path))
		copy(out, path)
		return out
	}

	out := make([]gridmap.Pixel, 0, len(path))
	out = append(out, path[0])

	for i := 1; i < len(path)-1; i++ {
		a := pixelToVec(path[i-1])
		b := pixelToVec(path[i])
		c := pixelToVec(path[i+1])

		ca := c.Sub(a).Normalized()
		ba := b.Sub(a).Normalized()

		dot := ca.Dot(ba)
		if dot < 0 {
			dot = -dot
		}
		if dot < CollinearityThreshold {
			out = append(out, path[i])
		}
	}

	out = append(out, path[len(path)-1])
	return out
}

func pixelToVec(p gridmap.Pixel) geom.Point {
	return geom.Point{X: float64(p.X), Y: float64(p.Y)}
}
