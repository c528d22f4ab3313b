package noise

// renderCell writes the scale x scale samples of cell (cx, cy) into buf
// at offset + i*stride + j.
//
// Sample offsets are sub-cell centres, (j+0.5)/scale and (i+0.5)/scale.
// The tiler lays cells on a grid that may be wider than the image: when a
// cell row runs onto a stride boundary after its first column, it has
// wrapped into the next image row and the rest of that cell row is skipped.
// Indices past len(buf) are dropped, which clips cells hanging over the
// bottom edge.
func renderCell(lat Lattice, cx, cy uint32, scale int, buf []float32, offset, stride int) {
	c := newCell(lat, cx, cy)
	step := 1 / float32(scale)

	for i := 0; i < scale; i++ {
		v := (float32(i) + 0.5) * step
		for j := 0; j < scale; j++ {
			idx := offset + i*stride + j
			if j != 0 && idx%stride == 0 {
				break
			}
			if idx >= len(buf) {
				continue
			}
			u := (float32(j) + 0.5) * step
			buf[idx] = c.Sample(u, v)
		}
	}
}

// RenderCell writes cell (cx, cy) into buf using CornerGradient.
// See the tiler for how offset and stride are chosen.
func RenderCell(cx, cy uint32, scale int, buf []float32, offset, stride int) {
	mustPositive("scale", scale)
	mustPositive("stride", stride)
	renderCell(CornerGradient, cx, cy, scale, buf, offset, stride)
}
