// Package generator owns an image buffer and layers Perlin noise into it.
package generator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/perlin/noise"
)

// ErrAmplitude reports an amplitude that has no finite float32 value.
var ErrAmplitude = errors.New("generator: amplitude must be a finite float32")

// Amplitude narrows a to float32. NaN and magnitudes that would overflow
// to infinity are rejected, so the result is always safe to pass to
// AddPerlinNoise.
func Amplitude(a float64) (float32, error) {
	if math.IsNaN(a) || math.Abs(a) > math.MaxFloat32 {
		return 0, fmt.Errorf("%w, got %v", ErrAmplitude, a)
	}
	return float32(a), nil
}

// Layer is one octave: the image is divided into Scale x Scale cells and
// the raw field is multiplied by Amplitude before it is added.
type Layer struct {
	Scale     int
	Amplitude float32
}

// Generator holds a zero-initialized width x height sample buffer.
// It is not safe for concurrent use.
type Generator struct {
	width, height int
	data          []float32
	scratch       []float32
}

// New allocates a zeroed width x height generator.
func New(width, height int) *Generator {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("generator: image must be at least 1x1, got %dx%d", width, height))
	}
	n := width * height
	return &Generator{
		width:   width,
		height:  height,
		data:    make([]float32, n),
		scratch: make([]float32, n),
	}
}

// Width returns the image width in samples.
func (g *Generator) Width() int { return g.width }

// Height returns the image height in samples.
func (g *Generator) Height() int { return g.height }

// ImageData returns the buffer in row-major order. The slice aliases the
// generator's storage; request it again after each mutation rather than
// holding on to it.
func (g *Generator) ImageData() []float32 {
	return g.data
}

// Grid returns the buffer as a noise.Grid.
func (g *Generator) Grid() noise.Grid {
	return noise.GridOf(g.data, g.height, g.width)
}

// Reset zeroes the buffer.
func (g *Generator) Reset() {
	clear(g.data)
}

// AddPerlinNoise adds amplitude times a raw noise layer to the buffer.
//
// The image is split into scale x scale windows with integer edges at
// cx*width/scale and cy*height/scale, and window (cx, cy) receives one full
// cell (cx, cy). With scale 1 the whole image is cell (0, 0). Windows left
// empty because scale exceeds the image size are skipped.
//
// The call is additive. Reset first for overwrite semantics.
func (g *Generator) AddPerlinNoise(scale int, amplitude float32) {
	if scale < 1 {
		panic(fmt.Sprintf("generator: scale must be >= 1, got %d", scale))
	}
	if a := float64(amplitude); math.IsNaN(a) || math.IsInf(a, 0) {
		panic(fmt.Sprintf("generator: amplitude must be finite, got %v", amplitude))
	}

	g.rawLayer(scale)

	// Scale first, then add with alpha 1: a fused alpha*x+y would round
	// differently on architectures with multiply-add.
	raw := blas32.Vector{N: len(g.scratch), Inc: 1, Data: g.scratch}
	img := blas32.Vector{N: len(g.data), Inc: 1, Data: g.data}
	blas32.Scal(amplitude, raw)
	blas32.Axpy(1, raw, img)
}

// AddLayers applies AddPerlinNoise for each layer in order.
func (g *Generator) AddLayers(layers ...Layer) {
	for _, l := range layers {
		g.AddPerlinNoise(l.Scale, l.Amplitude)
	}
}

// rawLayer overwrites scratch with the unscaled layer for scale.
func (g *Generator) rawLayer(scale int) {
	clear(g.scratch)
	grid := noise.GridOf(g.scratch, g.height, g.width)

	for cy := 0; cy < scale; cy++ {
		r0, r1 := cy*g.height/scale, (cy+1)*g.height/scale
		if r1 == r0 {
			continue
		}
		for cx := 0; cx < scale; cx++ {
			c0, c1 := cx*g.width/scale, (cx+1)*g.width/scale
			if c1 == c0 {
				continue
			}
			noise.Accumulate(grid.Window(r0, c0, r1-r0, c1-c0), uint32(cx), uint32(cy))
		}
	}
}
