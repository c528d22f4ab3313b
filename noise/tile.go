package noise

import (
	"fmt"
	"math"
)

// CellGrid returns how many cells per axis cover a width x height image
// at the given scale. The last column and row may overhang the image.
func CellGrid(width, height, scale int) (rx, ry int) {
	return (width-1)/scale + 1, (height-1)/scale + 1
}

// Noise2D returns a width x height row-major field with one lattice cell per
// scale x scale block of samples. Element (i, j) is at i*width + j.
func Noise2D(width, height, scale int) []float32 {
	buf := make([]float32, width*height)
	FillTiles(buf, width, height, scale)
	return buf
}

// FillTiles overwrites dst with the tiled field of Noise2D.
// dst must hold width*height samples.
func FillTiles(dst []float32, width, height, scale int) {
	checkTileArgs(len(dst), width, height, scale)
	fillTiles(CornerGradient, dst, width, height, scale)
}

func fillTiles(lat Lattice, dst []float32, width, height, scale int) {
	rx, ry := CellGrid(width, height, scale)
	for cy := 0; cy < ry; cy++ {
		tileRow(lat, dst, cy, rx, width, scale)
	}
}

// tileRow renders cell row cy. It only touches image rows
// [cy*scale, (cy+1)*scale).
func tileRow(lat Lattice, dst []float32, cy, rx, width, scale int) {
	rowOffset := cy * width * scale
	for cx := 0; cx < rx; cx++ {
		renderCell(lat, uint32(cx), uint32(cy), scale, dst, cx*scale+rowOffset, width)
	}
}

func checkTileArgs(n, width, height, scale int) {
	mustPositive("width", width)
	mustPositive("height", height)
	mustPositive("scale", scale)
	if n != width*height {
		panic(fmt.Sprintf("noise: buffer holds %d samples, want %dx%d", n, width, height))
	}
}

func mustPositive(name string, v int) {
	if v < 1 {
		panic(fmt.Sprintf("noise: %s must be >= 1, got %d", name, v))
	}
}

func mustFinite(name string, v float32) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("noise: %s must be finite, got %v", name, v))
	}
}
