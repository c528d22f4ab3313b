// Package noise generates deterministic, cell-local 2D Perlin noise.
//
// Every sample is a function of its integer cell coordinates and its offset
// inside the cell. There is no seed table: gradients come from an integer
// avalanche hash of the corner coordinates, so the corner shared by two cells
// always gets the same gradient.
package noise

import (
	"math"
	"math/bits"
)

// Gradient is a unit vector attached to an integer lattice corner.
type Gradient struct {
	X, Y float32
}

// Dot returns the dot product of g with (dx, dy).
func (g Gradient) Dot(dx, dy float32) float32 {
	return float32(g.X*dx) + float32(g.Y*dy)
}

// Lattice assigns a gradient to every integer corner.
type Lattice func(x, y uint32) Gradient

// Mixing rounds: rotate amounts and key.
var hashRounds = [3]struct {
	r1, r2 int
	key    uint32
}{
	{3, 17, 0x730d319b},
	{4, 27, 0x6373cd28},
	{6, 21, 0x6373cd28},
}

// Hash mixes a 32-bit key down to one well-distributed byte.
func Hash(v uint32) uint8 {
	keyed := v
	for _, r := range hashRounds {
		keyed ^= bits.RotateLeft32(keyed, r.r1) ^ bits.RotateLeft32(keyed, r.r2) ^ r.key
	}
	return uint8(bits.RotateLeft32(keyed, -int(v&0xf)))
}

// CornerKey packs corner coordinates into the hash input.
func CornerKey(x, y uint32) uint32 {
	return x | bits.RotateLeft32(y, 16)
}

// CornerGradient returns the gradient at lattice corner (x, y).
// The angle is quantized to 256 steps around the unit circle.
func CornerGradient(x, y uint32) Gradient {
	b := Hash(CornerKey(x, y))
	theta := float64(b) / 255 * 2 * math.Pi
	sin, cos := math.Sincos(theta)
	return Gradient{X: float32(cos), Y: float32(sin)}
}
