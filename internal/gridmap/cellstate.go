package gridmap

// CellState is the tagged belief state of a single grid cell, following
// the teacher's small-integer-enum-with-methods pattern (compare
// core.AirspaceLayer in the teacher repo).
type CellState uint8

const (
	Uncharted CellState = iota
	SeenFree
	Blocked
)

func (c CellState) String() string {
	switch c {
	case Uncharted:
		return "Uncharted"
	case SeenFree:
		return "SeenFree"
	case Blocked:
		return "Blocked"
	default:
		return "Invalid"
	}
}

// merge implements the §4.2 merge table: Blocked dominates, SeenFree
// upgrades only from Uncharted, Uncharted never overwrites.
func merge(local, remote CellState) CellState {
	if local == Blocked || remote == Blocked {
		return Blocked
	}
	if local == SeenFree || remote == SeenFree {
		return SeenFree
	}
	return Uncharted
}
