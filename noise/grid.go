package noise

import "fmt"

// Grid is a row-major view over a float32 buffer.
// Element (i, j) lives at Data[i*Stride+j]. A Grid returned by Window
// shares Data with its parent.
type Grid struct {
	Data   []float32
	Rows   int
	Cols   int
	Stride int
}

// NewGrid allocates a zeroed rows x cols grid.
func NewGrid(rows, cols int) Grid {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("noise: negative grid shape %dx%d", rows, cols))
	}
	return Grid{Data: make([]float32, rows*cols), Rows: rows, Cols: cols, Stride: cols}
}

// GridOf wraps data as a contiguous rows x cols grid.
func GridOf(data []float32, rows, cols int) Grid {
	if rows < 0 || cols < 0 || len(data) < rows*cols {
		panic(fmt.Sprintf("noise: buffer of %d samples cannot hold %dx%d", len(data), rows, cols))
	}
	return Grid{Data: data, Rows: rows, Cols: cols, Stride: cols}
}

// Window returns the rows x cols sub-grid starting at (r0, c0).
func (g Grid) Window(r0, c0, rows, cols int) Grid {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > g.Rows || c0+cols > g.Cols {
		panic(fmt.Sprintf("noise: window [%d:%d, %d:%d] outside %dx%d grid",
			r0, r0+rows, c0, c0+cols, g.Rows, g.Cols))
	}
	if rows == 0 || cols == 0 {
		return Grid{Rows: rows, Cols: cols, Stride: g.Stride}
	}
	start := r0*g.Stride + c0
	end := (r0+rows-1)*g.Stride + c0 + cols
	return Grid{Data: g.Data[start:end], Rows: rows, Cols: cols, Stride: g.Stride}
}

// Index maps (i, j) to its position in Data.
func (g Grid) Index(i, j int) int {
	return i*g.Stride + j
}

// At returns element (i, j).
func (g Grid) At(i, j int) float32 {
	return g.Data[g.Index(i, j)]
}

// Len is the number of elements in the view.
func (g Grid) Len() int {
	return g.Rows * g.Cols
}
