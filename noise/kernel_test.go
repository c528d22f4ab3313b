package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFadeBoundary(t *testing.T) {
	assert.Equal(t, float32(0), Fade(0))
	assert.Equal(t, float32(1), Fade(1))
	assert.Equal(t, float32(0.5), Fade(0.5))

	// Central differences; the quintic's slope and curvature at the ends
	// are O(h^2), so they shrink to zero with h.
	const h = float32(1.0 / 64)
	for _, w := range []float32{0, 1} {
		lo, mid, hi := Fade(w-h), Fade(w), Fade(w+h)
		slope := (hi - lo) / (2 * h)
		curvature := (hi - 2*mid + lo) / (h * h)
		assert.InDelta(t, 0, slope, 5e-3, "fade'(%v)", w)
		assert.InDelta(t, 0, curvature, 2e-2, "fade''(%v)", w)
	}
}

func TestFadeMatchesPolynomial(t *testing.T) {
	for i := 0; i <= 64; i++ {
		w := float64(i) / 64
		want := 6*math.Pow(w, 5) - 15*math.Pow(w, 4) + 10*math.Pow(w, 3)
		assert.InDelta(t, want, Fade(float32(w)), 1e-6, "w=%v", w)
		assert.InDelta(t, 1.0, Fade(float32(w))+Fade(float32(1-w)), 1e-6, "w=%v", w)
	}
	assert.Equal(t, float32(0.103515625), Fade(0.25))
}

func TestLerpFade(t *testing.T) {
	assert.Equal(t, float32(2), LerpFade(2, 5, 0))
	assert.Equal(t, float32(5), LerpFade(2, 5, 1))
	assert.InDelta(t, 3.5, LerpFade(2, 5, 0.5), 1e-6)
}

func TestCellSampleConvention(t *testing.T) {
	right := Gradient{1, 0}
	up := Gradient{0, 1}

	tests := []struct {
		name string
		cell Cell
		u, v float32
		want float32
	}{
		{"lattice corner is zero", CellAt(3, 9), 0, 0, 0},
		{"uniform x gradient", Cell{right, right, right, right}, 0.25, 0.6, 0.25 - 0.103515625},
		{"uniform y gradient", Cell{up, up, up, up}, 0.8, 0.25, 0.25 - 0.103515625},
		{"single corner at (x, y+1)", Cell{G01: up}, 0.25, 0.75, -0.20092106},
		{"cell (0,0) centre", CellAt(0, 0), 0.5, 0.5, -0.17084500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.cell.Sample(tt.u, tt.v), 1e-6)
		})
	}
}

func TestCellSampleBounded(t *testing.T) {
	for x := uint32(0); x < 8; x++ {
		for y := uint32(0); y < 8; y++ {
			c := CellAt(x, y)
			for i := 0; i <= 16; i++ {
				for j := 0; j <= 16; j++ {
					s := c.Sample(float32(j)/16, float32(i)/16)
					assert.LessOrEqual(t, s, float32(0.7072), "cell (%d, %d)", x, y)
					assert.GreaterOrEqual(t, s, float32(-0.7072), "cell (%d, %d)", x, y)
				}
			}
		}
	}
}
