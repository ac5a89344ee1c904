package sat

import "fmt"

// Sum returns the sum of the original values inside the inclusive rectangle
// (y0,x0)-(y1,x1) of a built table using at most four lookups.
func (g *Grid[T]) Sum(y0, x0, y1, x1 int) T {
	if y0 > y1 || x0 > x1 {
		panic(fmt.Sprintf("sat: invalid rectangle (%d,%d)-(%d,%d)", y0, x0, y1, x1))
	}
	sum := g.At(y1, x1)
	if y0 > 0 {
		sum -= g.At(y0-1, x1)
	}
	if x0 > 0 {
		sum -= g.At(y1, x0-1)
	}
	if y0 > 0 && x0 > 0 {
		sum += g.At(y0-1, x0-1)
	}
	return sum
}

// Mean returns the average original value inside the inclusive rectangle
// (y0,x0)-(y1,x1) of a built table.
func (g *Grid[T]) Mean(y0, x0, y1, x1 int) float64 {
	area := (y1 - y0 + 1) * (x1 - x0 + 1)
	return float64(g.Sum(y0, x0, y1, x1)) / float64(area)
}
