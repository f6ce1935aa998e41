package io

import (
	"fmt"
	"sort"

	"github.com/phil-mansfield/table"
	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/tricubic/math/interpolate"
)

// Grid is a function tabulated on a regular 3D grid, Vals[i][j][k] =
// f(X1[i], X2[j], X3[k]). Coordinates are sorted in increasing order.
type Grid struct {
	X1, X2, X3 []float64
	Vals       [][][]float64
}

// ReadGrid reads a grid from a whitespace-separated table. Each row of the
// table holds one grid point. The rows must cover every combination of the
// distinct x1, x2, and x3 values exactly once, in any order.
func ReadGrid(fname string, cols GridColumns) (*Grid, error) {
	tab, err := table.ReadTable(fname, cols.Columns(), nil)
	if err != nil {
		return nil, err
	}

	grid, err := NewGrid(tab[0], tab[1], tab[2], tab[3])
	if err != nil {
		return nil, fmt.Errorf("Grid table %s: %w", fname, err)
	}

	n, m, l := grid.Dims()
	log.Infof("Read %d x %d x %d grid from %s.", n, m, l, fname)
	return grid, nil
}

// NewGrid assembles a grid from parallel columns of coordinates and values.
func NewGrid(x1s, x2s, x3s, ys []float64) (*Grid, error) {
	if len(x1s) != len(ys) || len(x2s) != len(ys) || len(x3s) != len(ys) {
		return nil, fmt.Errorf(
			"%w: columns have lengths %d, %d, %d, and %d",
			interpolate.ErrLength, len(x1s), len(x2s), len(x3s), len(ys),
		)
	}

	grid := &Grid{X1: distinct(x1s), X2: distinct(x2s), X3: distinct(x3s)}
	n, m, l := grid.Dims()
	if n*m*l != len(ys) {
		return nil, fmt.Errorf(
			"%w: %d distinct x1 values, %d distinct x2 values, and %d "+
				"distinct x3 values need %d rows, but there are %d",
			interpolate.ErrLength, n, m, l, n*m*l, len(ys),
		)
	}

	idx1, idx2, idx3 := indexOf(grid.X1), indexOf(grid.X2), indexOf(grid.X3)
	grid.Vals = make([][][]float64, n)
	seen := make([][][]bool, n)
	for i := range grid.Vals {
		grid.Vals[i] = make([][]float64, m)
		seen[i] = make([][]bool, m)
		for j := range grid.Vals[i] {
			grid.Vals[i][j] = make([]float64, l)
			seen[i][j] = make([]bool, l)
		}
	}

	for r := range ys {
		i, j, k := idx1[x1s[r]], idx2[x2s[r]], idx3[x3s[r]]
		if seen[i][j][k] {
			return nil, fmt.Errorf(
				"The point (%g, %g, %g) appears more than once.",
				x1s[r], x2s[r], x3s[r],
			)
		}
		seen[i][j][k] = true
		grid.Vals[i][j][k] = ys[r]
	}

	return grid, nil
}

// Dims returns the number of points along each axis.
func (grid *Grid) Dims() (n, m, l int) {
	return len(grid.X1), len(grid.X2), len(grid.X3)
}

// Axis returns the coordinates of axis 0, 1, or 2.
func (grid *Grid) Axis(dim int) []float64 {
	switch dim {
	case 0:
		return grid.X1
	case 1:
		return grid.X2
	case 2:
		return grid.X3
	}
	panic(fmt.Sprintf("Axis %d does not exist.", dim))
}

// Contains returns true if (x1, x2, x3) lies within the tabulated region.
func (grid *Grid) Contains(x1, x2, x3 float64) bool {
	for dim, x := range [3]float64{x1, x2, x3} {
		xs := grid.Axis(dim)
		if x < xs[0] || x > xs[len(xs)-1] {
			return false
		}
	}
	return true
}

// TriCubic creates a TriCubic interpolating the grid.
func (grid *Grid) TriCubic() (*interpolate.TriCubic, error) {
	return interpolate.NewTriCubic(grid.X1, grid.X2, grid.X3, grid.Vals)
}

// ReadPoints reads query points from the given columns of a
// whitespace-separated table.
func ReadPoints(fname string, cols []int) (x1s, x2s, x3s []float64, err error) {
	if len(cols) != 3 {
		panic(fmt.Sprintf("ReadPoints given %d columns instead of 3.", len(cols)))
	}
	tab, err := table.ReadTable(fname, cols, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	log.Infof("Read %d points from %s.", len(tab[0]), fname)
	return tab[0], tab[1], tab[2], nil
}

// ReadColumn reads a single column of a whitespace-separated table.
func ReadColumn(fname string, col int) ([]float64, error) {
	tab, err := table.ReadTable(fname, []int{col}, nil)
	if err != nil {
		return nil, err
	}

	log.Infof("Read %d samples from column %d of %s.", len(tab[0]), col, fname)
	return tab[0], nil
}

// distinct returns the sorted distinct values of xs.
func distinct(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	out := []float64{}
	for i, x := range sorted {
		if i == 0 || x != sorted[i-1] {
			out = append(out, x)
		}
	}
	return out
}

func indexOf(xs []float64) map[float64]int {
	idx := make(map[float64]int, len(xs))
	for i, x := range xs {
		idx[x] = i
	}
	return idx
}
