package sat

import "fmt"

// Number is any element type usable as an accumulator. Overflow is the
// caller's concern and is controlled by the choice of T.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Grid is a dense row-major 2D buffer with dimensions fixed at creation.
type Grid[T Number] struct {
	// pix holds the values. The value at (y, x) is pix[y*cols + x].
	pix  []T
	rows int
	cols int
}

func NewGrid[T Number](rows, cols int) *Grid[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("sat: negative grid dimensions %dx%d", rows, cols))
	}
	return &Grid[T]{
		pix:  make([]T, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// GridFrom wraps values as a rows x cols grid without copying.
func GridFrom[T Number](rows, cols int, values []T) *Grid[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("sat: negative grid dimensions %dx%d", rows, cols))
	}
	if len(values) != rows*cols {
		panic(fmt.Sprintf("sat: %d values do not fill a %dx%d grid", len(values), rows, cols))
	}
	return &Grid[T]{pix: values, rows: rows, cols: cols}
}

func (g *Grid[T]) Rows() int { return g.rows }
func (g *Grid[T]) Cols() int { return g.cols }

// Empty reports whether the grid has no cells.
func (g *Grid[T]) Empty() bool { return g.rows == 0 || g.cols == 0 }

func (g *Grid[T]) At(y, x int) T {
	return g.pix[g.offset(y, x)]
}

func (g *Grid[T]) Set(y, x int, v T) {
	g.pix[g.offset(y, x)] = v
}

// Row returns row y as a slice sharing the grid's buffer.
func (g *Grid[T]) Row(y int) []T {
	if y < 0 || y >= g.rows {
		panic(fmt.Sprintf("sat: row %d out of range [0,%d)", y, g.rows))
	}
	return g.pix[y*g.cols : (y+1)*g.cols : (y+1)*g.cols]
}

// Values returns the backing buffer.
func (g *Grid[T]) Values() []T {
	return g.pix
}

func (g *Grid[T]) offset(y, x int) int {
	if y < 0 || y >= g.rows || x < 0 || x >= g.cols {
		panic(fmt.Sprintf("sat: cell (%d,%d) out of range for %dx%d grid", y, x, g.rows, g.cols))
	}
	return y*g.cols + x
}
