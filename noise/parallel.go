package noise

import "github.com/dgravesa/go-parallel/parallel"

// Noise2DParallel is Noise2D with cell rows rendered concurrently.
// The result is bit-identical to Noise2D.
func Noise2DParallel(width, height, scale int) []float32 {
	buf := make([]float32, width*height)
	FillTilesParallel(buf, width, height, scale)
	return buf
}

// FillTilesParallel is FillTiles with cell rows rendered concurrently.
// Cell rows write disjoint image rows, so no synchronization is needed.
func FillTilesParallel(dst []float32, width, height, scale int) {
	checkTileArgs(len(dst), width, height, scale)
	rx, ry := CellGrid(width, height, scale)
	parallel.For(ry, func(cy, _ int) {
		tileRow(CornerGradient, dst, cy, rx, width, scale)
	})
}
