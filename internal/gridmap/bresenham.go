package gridmap

// BresenhamLine returns every pixel on the line between a and b
// inclusive, used by the brain to infer a linear obstacle between two
// nearby collisions (spec.md §4.5). Stdlib-only: no library in the
// retrieval pack offers a traversed-pixel-list primitive (fogleman/gg,
// used elsewhere for PNG rendering, draws anti-aliased lines onto a
// canvas but never exposes the integer pixels it touches).
func BresenhamLine(a, b Pixel) []Pixel {
	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	var out []Pixel
	x, y := x0, y0
	for {
		out = append(out, Pixel{X: x, Y: y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
