package noise

// Accumulate adds one cell of noise spanning all of dst, treating the grid
// as cell (x, y) with corners (x, y), (x, y+1), (x+1, y) and (x+1, y+1).
// Values are added, never overwritten; zero dst first for a fresh layer.
func Accumulate(dst Grid, x, y uint32) {
	accumulate(CornerGradient, dst, x, y, 1)
}

// AccumulateScaled is Accumulate with every sample multiplied by amp.
func AccumulateScaled(dst Grid, x, y uint32, amp float32) {
	mustFinite("amplitude", amp)
	accumulate(CornerGradient, dst, x, y, amp)
}

func accumulate(lat Lattice, dst Grid, x, y uint32, amp float32) {
	if dst.Rows == 0 || dst.Cols == 0 {
		return
	}
	c := newCell(lat, x, y)
	hp := 1 / float32(dst.Cols)
	vp := 1 / float32(dst.Rows)

	for i := 0; i < dst.Rows; i++ {
		v := vp/2 + float32(vp*float32(i))
		row := dst.Data[i*dst.Stride : i*dst.Stride+dst.Cols]
		for j := range row {
			u := hp/2 + float32(hp*float32(j))
			row[j] += float32(amp * c.Sample(u, v))
		}
	}
}
