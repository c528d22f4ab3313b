package noise

// Products are converted to float32 before they are added so the compiler
// cannot fuse them into a multiply-add. Fused and unfused forms round
// differently, and samples must be bit-identical on every architecture.

// Fade is Perlin's quintic smoothstep 6w^5 - 15w^4 + 10w^3.
// First and second derivatives vanish at 0 and 1.
func Fade(w float32) float32 {
	p := float32(w*6) - 15
	p = float32(p*w) + 10
	return p * w * w * w
}

// LerpFade interpolates from a0 to a1 with weight fade(w).
func LerpFade(a0, a1, w float32) float32 {
	return float32((a1-a0)*Fade(w)) + a0
}

// Cell holds the four corner gradients of one lattice cell.
// G01 is the corner at (x, y+1) and G10 the corner at (x+1, y).
type Cell struct {
	G00, G01, G10, G11 Gradient
}

// CellAt returns cell (x, y) with gradients from CornerGradient.
func CellAt(x, y uint32) Cell {
	return newCell(CornerGradient, x, y)
}

func newCell(lat Lattice, x, y uint32) Cell {
	return Cell{
		G00: lat(x, y),
		G01: lat(x, y+1),
		G10: lat(x+1, y),
		G11: lat(x+1, y+1),
	}
}

// Sample evaluates the cell at offset (u, v) in [0, 1]^2.
// The corner index is subtracted from the offset, so corner (a, b)
// contributes g_ab . (u-a, v-b). The v axis is blended first.
func (c Cell) Sample(u, v float32) float32 {
	d00 := c.G00.Dot(u, v)
	d01 := c.G01.Dot(u, v-1)
	d10 := c.G10.Dot(u-1, v)
	d11 := c.G11.Dot(u-1, v-1)

	m0 := LerpFade(d00, d01, v)
	m1 := LerpFade(d10, d11, v)
	return LerpFade(m0, m1, u)
}
