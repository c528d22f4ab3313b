package noise

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoise2DParallelMatchesSerial(t *testing.T) {
	sizes := [][3]int{{1, 1, 1}, {5, 5, 2}, {64, 48, 8}, {101, 67, 10}, {33, 200, 7}}
	for _, dims := range sizes {
		w, h, s := dims[0], dims[1], dims[2]
		t.Run(fmt.Sprintf("%dx%d/%d", w, h, s), func(t *testing.T) {
			assert.Equal(t, Noise2D(w, h, s), Noise2DParallel(w, h, s))
		})
	}
}

func BenchmarkNoise2DParallel(b *testing.B) {
	buf := make([]float32, 512*512)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		FillTilesParallel(buf, 512, 512, 32)
	}
}
