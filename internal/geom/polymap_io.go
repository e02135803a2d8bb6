package geom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadPolyMapFile reads a PolyMap from a human-editable text file.
//
// Format: one polygon per non-blank line. A line is a closed flag
// ("closed" or "open") followed by whitespace-separated "x,y" point
// pairs, e.g.:
//
//	closed 0,0 2,0 2,2 0,2
//	open 0,0 1,1
//
// Lines starting with '#' are comments.
func LoadPolyMapFile(path string) (*PolyMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()
	return ParsePolyMap(f)
}

// ParsePolyMap reads a PolyMap from r using the same format as
// LoadPolyMapFile.
func ParsePolyMap(r io.Reader) (*PolyMap, error) {
	m := &PolyMap{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		poly, err := parsePolygonLine(line)
		if err != nil {
			return nil, fmt.Errorf("map file line %d: %w", lineNo, err)
		}
		m.Polygons = append(m.Polygons, poly)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	return m, nil
}

func parsePolygonLine(line string) (Polygon, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Polygon{}, fmt.Errorf("expected \"closed|open x,y ...\", got %q", line)
	}

	var poly Polygon
	switch fields[0] {
	case "closed":
		poly.Closed = true
	case "open":
		poly.Closed = false
	default:
		return Polygon{}, fmt.Errorf("expected \"closed\" or \"open\", got %q", fields[0])
	}

	for _, tok := range fields[1:] {
		xy := strings.SplitN(tok, ",", 2)
		if len(xy) != 2 {
			return Polygon{}, fmt.Errorf("bad point %q", tok)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return Polygon{}, fmt.Errorf("bad x in %q: %w", tok, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return Polygon{}, fmt.Errorf("bad y in %q: %w", tok, err)
		}
		poly.Points = append(poly.Points, Point{X: x, Y: y})
	}
	return poly, nil
}

// WriteTo serializes the map back to the text format read by
// LoadPolyMapFile.
func (m PolyMap) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, poly := range m.Polygons {
		if poly.Closed {
			bw.WriteString("closed")
		} else {
			bw.WriteString("open")
		}
		for _, p := range poly.Points {
			fmt.Fprintf(bw, " %s,%s", strconv.FormatFloat(p.X, 'g', -1, 64), strconv.FormatFloat(p.Y, 'g', -1, 64))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
