package interpolate

import (
	"fmt"
)

// QuadCubic is a cubic spline interpolator for a function tabulated on a
// regular 4D grid, vals[i][j][k][h] = f(x1[i], x2[j], x3[k], x4[h]).
//
// It owns one TriCubic for every slice of constant x1, each of which keeps
// its own derivative cache.
type QuadCubic struct {
	x1    []float64
	tris  []*TriCubic
	slab  []float64
	outer *Spline
}

// NewQuadCubic creates a cubic spline through a 4D table. Every axis needs
// at least MinPoints strictly monotonic coordinates. The table is copied.
func NewQuadCubic(
	x1, x2, x3, x4 []float64, vals [][][][]float64,
) (*QuadCubic, error) {
	if len(x1) != len(vals) {
		return nil, fmt.Errorf(
			"%w: len(x1) = %d, but len(vals) = %d",
			ErrLength, len(x1), len(vals),
		)
	} else if err := checkSize("x1", len(x1)); err != nil {
		return nil, err
	}

	tris, err := NewTriCubicArray(len(x1), len(x2), len(x3), len(x4))
	if err != nil {
		return nil, err
	}

	quad := &QuadCubic{
		x1:   make([]float64, len(x1)),
		tris: tris,
		slab: make([]float64, len(x1)),
	}
	quad.outer = newSplineShell(len(x1))
	quad.outer.y2s = make([]float64, len(x1))

	if err := quad.ResetData(x1, x2, x3, x4, vals); err != nil {
		return nil, err
	}
	return quad, nil
}

// Dims returns the number of tabulated points along each axis.
func (quad *QuadCubic) Dims() (n, m, l, k int) {
	m, l, k = quad.tris[0].Dims()
	return len(quad.x1), m, l, k
}

// ResetData replaces the table of the QuadCubic. The new table must have the
// same shape as the one given at construction. Every derivative cache is
// invalidated.
func (quad *QuadCubic) ResetData(
	x1, x2, x3, x4 []float64, vals [][][][]float64,
) error {
	if len(x1) != len(vals) {
		return fmt.Errorf(
			"%w: len(x1) = %d, but len(vals) = %d",
			ErrLength, len(x1), len(vals),
		)
	} else if len(x1) != len(quad.x1) {
		return fmt.Errorf(
			"%w: QuadCubic was built for %d x1 points, but was given %d",
			ErrLength, len(quad.x1), len(x1),
		)
	} else if err := checkMonotonic("x1", x1); err != nil {
		return err
	}

	// Check every slice before changing any of them.
	m, l, k := quad.tris[0].Dims()
	if len(x2) != m || len(x3) != l || len(x4) != k {
		return fmt.Errorf(
			"%w: QuadCubic slices are %d x %d x %d, but was given %d x %d x %d",
			ErrLength, m, l, k, len(x2), len(x3), len(x4),
		)
	}
	for i := range vals {
		if err := checkGrid3(x2, x3, x4, vals[i]); err != nil {
			return fmt.Errorf("slice %d of QuadCubic table: %w", i, err)
		}
	}

	for i, tri := range quad.tris {
		tri.load(x2, x3, x4, vals[i])
	}
	copy(quad.x1, x1)
	quad.outer.bind(quad.x1, quad.slab)
	return nil
}

// Eval evaluates the spline at (x1, x2, x3, x4).
func (quad *QuadCubic) Eval(x1, x2, x3, x4 float64) float64 {
	for i, tri := range quad.tris {
		quad.slab[i] = tri.Eval(x2, x3, x4)
	}
	quad.outer.bind(quad.x1, quad.slab)
	return quad.outer.Eval(x1)
}

// EvalAll evaluates the QuadCubic at every point (xs[i], ys[i], zs[i],
// ws[i]).
func (quad *QuadCubic) EvalAll(
	xs, ys, zs, ws []float64, out ...[]float64,
) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = quad.Eval(xs[i], ys[i], zs[i], ws[i])
	}
	return out[0]
}

// Y2s returns a copy of the derivative caches of every slice.
func (quad *QuadCubic) Y2s() [][][][]float64 {
	out := make([][][][]float64, len(quad.tris))
	for i, tri := range quad.tris {
		out[i] = tri.Y2s()
	}
	return out
}

// SetY2s loads the derivative caches of every slice. y2s is copied.
func (quad *QuadCubic) SetY2s(y2s [][][][]float64) error {
	if len(y2s) != len(quad.tris) {
		return fmt.Errorf(
			"%w: QuadCubic has %d slices, but was given %d",
			ErrLength, len(quad.tris), len(y2s),
		)
	}
	for i, tri := range quad.tris {
		if err := tri.SetY2s(y2s[i]); err != nil {
			return fmt.Errorf("slice %d of QuadCubic cache: %w", i, err)
		}
	}
	return nil
}

// Ref returns a copy of the QuadCubic with its own tables and caches.
func (quad *QuadCubic) Ref() QuadInterpolator {
	n := len(quad.x1)
	cp := &QuadCubic{
		x1:   make([]float64, n),
		tris: make([]*TriCubic, n),
		slab: make([]float64, n),
	}
	copy(cp.x1, quad.x1)
	for i, tri := range quad.tris {
		cp.tris[i] = tri.Ref().(*TriCubic)
	}
	cp.outer = newSplineShell(n)
	cp.outer.y2s = make([]float64, n)
	cp.outer.bind(cp.x1, cp.slab)
	return cp
}
