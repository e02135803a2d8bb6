package gridmap

// World/grid constants, normative per spec.md §6.
const (
	WidthMeters  = 2.0
	HeightMeters = 3.0
	PPM          = 100 // pixels per meter

	CenterX = 1.0
	CenterY = 1.5

	WidthPx  = int(WidthMeters * PPM)
	HeightPx = int(HeightMeters * PPM)

	DilationSize = 2
)
