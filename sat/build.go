// Package sat builds summed-area tables (integral images) in place.
//
// After Build, every cell holds the sum of all original values in the
// rectangle spanning from the origin to that cell, inclusive:
//
//	I(y,x) = i(y,x) + I(y-1,x) + I(y,x-1) - I(y-1,x-1)
//
// with the out-of-range terms dropped on the first row and column.
package sat

import (
	"iter"
)

// Diagonal is the anti-diagonal of a rows x cols grid holding every cell
// with y+x == Index.
type Diagonal struct {
	Index int
	// Y, X is the bottom-left cell, the one with the largest y.
	Y, X int
	Len  int
}

// Diagonals yields the anti-diagonals of a rows x cols grid in increasing
// order of y+x. Every predecessor of a cell lies on an earlier diagonal.
func Diagonals(rows, cols int) iter.Seq[Diagonal] {
	return func(yield func(Diagonal) bool) {
		if rows <= 0 || cols <= 0 {
			return
		}
		for d := 0; d < rows+cols-1; d++ {
			if !yield(diagonal(rows, cols, d)) {
				return
			}
		}
	}
}

func diagonal(rows, cols, d int) Diagonal {
	// Grow down the first column, then slide along the last row.
	y := min(d, rows-1)
	x := d - y
	top := max(0, d-cols+1)
	return Diagonal{Index: d, Y: y, X: x, Len: y - top + 1}
}

// Cells yields the diagonal's cells from bottom-left to top-right.
func (d Diagonal) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := range d.Len {
			if !yield(d.Y-i, d.X+i) {
				return
			}
		}
	}
}

// Build turns g into its summed-area table in place and returns it.
// Grids with no rows or no columns are left untouched.
func Build[T Number](g *Grid[T]) *Grid[T] {
	for d := range Diagonals(g.rows, g.cols) {
		BuildDiagonal(g, d)
	}
	return g
}

// BuildDiagonal finalizes the cells of d. All diagonals before d must
// already be built. Cells within d depend only on earlier diagonals, so
// they may be computed in any order.
func BuildDiagonal[T Number](g *Grid[T], d Diagonal) {
	for y, x := range d.Cells() {
		accumulate(g, y, x)
	}
}

func accumulate[T Number](g *Grid[T], y, x int) {
	i := g.offset(y, x)
	switch {
	case y > 0 && x > 0:
		g.pix[i] += g.pix[i-g.cols] + g.pix[i-1] - g.pix[i-g.cols-1]
	case y > 0:
		g.pix[i] += g.pix[i-g.cols]
	case x > 0:
		g.pix[i] += g.pix[i-1]
	}
}
