package interpolate

import (
	"fmt"
)

////////////////////////////
// BiCubic Implementation //
////////////////////////////

// BiCubic is a bicubic spline interpolator for a function tabulated on a
// regular 2D grid, vals[i][j] = f(xs[i], ys[j]).
//
// It keeps one Spline for every row of constant x. An evaluation at (x, y)
// first evaluates each row at y and then fits a spline through those values
// along x.
type BiCubic struct {
	xs, ys []float64
	vals   [][]float64
	// y2s[i] holds the second derivatives of row i.
	y2s [][]float64
	// owned is false when the tables above belong to a parent TriCubic.
	owned bool

	rows    []*Spline
	rowVals []float64
	outer   *Spline

	lastY  float64
	lastOK bool
}

// NewZeroBiCubic creates a BiCubic for an m x l table of zeros. Init must be
// called before it is evaluated.
func NewZeroBiCubic(m, l int) (*BiCubic, error) {
	if err := checkGridSize2(m, l); err != nil {
		return nil, err
	}
	return newBiCubic(m, l), nil
}

func newBiCubic(m, l int) *BiCubic {
	bi := newBiCubicShell(m, l)
	bi.owned = true
	bi.bind(
		make([]float64, m), make([]float64, l), zero2(m, l), zero2(m, l),
	)
	return bi
}

// newBiCubicShell creates a BiCubic without any table storage. It must be
// bound to a table before it is used.
func newBiCubicShell(m, l int) *BiCubic {
	bi := &BiCubic{}
	bi.rows = make([]*Spline, m)
	for i := range bi.rows {
		bi.rows[i] = newSplineShell(l)
	}
	bi.rowVals = make([]float64, m)
	bi.outer = newSplineShell(m)
	bi.outer.y2s = make([]float64, m)
	return bi
}

// NewBiCubic creates a bicubic spline through the table vals[i][j] =
// f(xs[i], ys[j]). xs and ys must be strictly monotonic. The table is copied.
func NewBiCubic(xs, ys []float64, vals [][]float64) (*BiCubic, error) {
	if err := checkGrid2(xs, ys, vals); err != nil {
		return nil, err
	}

	bi := newBiCubic(len(xs), len(ys))
	bi.load(xs, ys, vals)
	return bi, nil
}

// NewUniformBiCubic creates a bicubic spline through a table with uniformly
// spaced points along both axes.
func NewUniformBiCubic(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	vals [][]float64,
) (*BiCubic, error) {
	if err := checkGridSize2(nx, ny); err != nil {
		return nil, err
	}
	return NewBiCubic(uniform(x0, dx, nx), uniform(y0, dy, ny), vals)
}

// NewBiCubicArray creates n zero-valued BiCubics of size m x l.
func NewBiCubicArray(n, m, l int) ([]*BiCubic, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: cannot create %d BiCubics", ErrTooSmall, n)
	} else if err := checkGridSize2(m, l); err != nil {
		return nil, err
	}

	bis := make([]*BiCubic, n)
	for i := range bis {
		bis[i] = newBiCubic(m, l)
	}
	return bis, nil
}

// Init replaces the table of the BiCubic. The new table must have the same
// shape as the old one.
func (bi *BiCubic) Init(xs, ys []float64, vals [][]float64) error {
	if err := checkGrid2(xs, ys, vals); err != nil {
		return err
	}
	if len(xs) != len(bi.xs) || len(ys) != len(bi.ys) {
		return fmt.Errorf(
			"%w: BiCubic was built for a %d x %d grid, but was given %d x %d",
			ErrLength, len(bi.xs), len(bi.ys), len(xs), len(ys),
		)
	}

	if !bi.owned {
		m, l := len(xs), len(ys)
		bi.owned = true
		bi.bind(
			make([]float64, m), make([]float64, l), zero2(m, l), zero2(m, l),
		)
	}
	bi.load(xs, ys, vals)
	return nil
}

// load copies a validated table into the BiCubic's own storage.
func (bi *BiCubic) load(xs, ys []float64, vals [][]float64) {
	copy(bi.xs, xs)
	copy(bi.ys, ys)
	copy2(bi.vals, vals)
	bi.bind(bi.xs, bi.ys, bi.vals, bi.y2s)
}

// bind points the BiCubic at tables owned by its caller. Second derivatives
// computed by the rows are written into y2s.
func (bi *BiCubic) bind(xs, ys []float64, vals, y2s [][]float64) {
	bi.xs, bi.ys, bi.vals, bi.y2s = xs, ys, vals, y2s
	for i, row := range bi.rows {
		row.y2s = y2s[i]
		row.bind(ys, vals[i])
	}
	bi.outer.bind(xs, bi.rowVals)
	bi.lastOK = false
}

// adoptY2s declares that y2s already holds the second derivatives of the
// current table, so the rows skip their solves.
func (bi *BiCubic) adoptY2s() {
	for _, row := range bi.rows {
		row.fitted = true
	}
	bi.lastOK = false
}

// fit solves for the second derivatives of every row which needs it.
func (bi *BiCubic) fit() {
	for _, row := range bi.rows {
		if !row.fitted {
			row.fit()
		}
	}
}

// Eval evaluates the bicubic spline at (x, y).
func (bi *BiCubic) Eval(x, y float64) float64 {
	if !bi.lastOK || y != bi.lastY {
		for i, row := range bi.rows {
			bi.rowVals[i] = row.Eval(y)
		}
		bi.outer.reset()
		bi.lastY, bi.lastOK = y, true
	}

	return bi.outer.Eval(x)
}

// EvalAll evaluates the BiCubic at every point (xs[i], ys[i]).
func (bi *BiCubic) EvalAll(xs, ys []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = bi.Eval(xs[i], ys[i])
	}
	return out[0]
}

// Y2s returns a copy of the second derivatives of every row spline.
func (bi *BiCubic) Y2s() [][]float64 {
	bi.fit()
	out := zero2(len(bi.y2s), len(bi.y2s[0]))
	copy2(out, bi.y2s)
	return out
}

// SetY2s sets the second derivatives of every row spline, so that later
// evaluations skip solving for them. y2s is copied.
func (bi *BiCubic) SetY2s(y2s [][]float64) error {
	if len(y2s) != len(bi.rows) {
		return fmt.Errorf(
			"%w: BiCubic has %d rows, but was given %d", ErrLength,
			len(bi.rows), len(y2s),
		)
	}
	for i := range y2s {
		if len(y2s[i]) != len(bi.ys) {
			return fmt.Errorf(
				"%w: BiCubic rows have %d points, but row %d has %d",
				ErrLength, len(bi.ys), i, len(y2s[i]),
			)
		}
	}

	copy2(bi.y2s, y2s)
	bi.adoptY2s()
	return nil
}

// Ref returns a copy of the BiCubic with its own tables and cache.
func (bi *BiCubic) Ref() BiInterpolator {
	cp := newBiCubic(len(bi.xs), len(bi.ys))
	cp.load(bi.xs, bi.ys, bi.vals)
	copy2(cp.y2s, bi.y2s)
	for i, row := range bi.rows {
		cp.rows[i].fitted = row.fitted
	}
	return cp
}

/////////////////////////////
// TriCubic Implementation //
/////////////////////////////

// TriCubic is a tricubic spline interpolator for a function tabulated on a
// regular 3D grid, vals[i][j][k] = f(x1[i], x2[j], x3[k]).
//
// It keeps one BiCubic for every slice of constant x1. An evaluation at
// (x1, x2, x3) evaluates each slice at (x2, x3) and then fits a spline
// through those values along x1. The second derivatives of every row inside
// every slice are kept in a DerivCache, so only the first evaluation after
// construction or ResetData pays for the inner tridiagonal solves.
type TriCubic struct {
	x1, x2, x3 []float64
	vals       [][][]float64

	slices []*BiCubic
	slab   []float64
	outer  *Spline
	cache  *DerivCache
}

// NewZeroTriCubic creates a TriCubic for an n x m x l table of zeros.
// ResetData must be called before it is evaluated.
func NewZeroTriCubic(n, m, l int) (*TriCubic, error) {
	if err := checkGridSize3(n, m, l); err != nil {
		return nil, err
	}
	return newTriCubic(n, m, l), nil
}

func newTriCubic(n, m, l int) *TriCubic {
	tri := &TriCubic{}
	tri.x1 = make([]float64, n)
	tri.x2 = make([]float64, m)
	tri.x3 = make([]float64, l)
	tri.vals = zero3(n, m, l)

	tri.slices = make([]*BiCubic, n)
	for i := range tri.slices {
		tri.slices[i] = newBiCubicShell(m, l)
	}
	tri.slab = make([]float64, n)
	tri.outer = newSplineShell(n)
	tri.outer.y2s = make([]float64, n)
	tri.outer.bind(tri.x1, tri.slab)
	tri.cache = newDerivCache(n, m, l)
	return tri
}

// NewTriCubic creates a tricubic spline through the table vals[i][j][k] =
// f(x1[i], x2[j], x3[k]). Every axis needs at least MinPoints strictly
// monotonic coordinates. The table is copied.
func NewTriCubic(x1, x2, x3 []float64, vals [][][]float64) (*TriCubic, error) {
	if err := checkGrid3(x1, x2, x3, vals); err != nil {
		return nil, err
	}

	tri := newTriCubic(len(x1), len(x2), len(x3))
	tri.load(x1, x2, x3, vals)
	return tri, nil
}

// NewUniformTriCubic creates a tricubic spline through a table with
// uniformly spaced points along every axis.
func NewUniformTriCubic(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	z0, dz float64, nz int,
	vals [][][]float64,
) (*TriCubic, error) {
	if err := checkGridSize3(nx, ny, nz); err != nil {
		return nil, err
	}
	return NewTriCubic(
		uniform(x0, dx, nx), uniform(y0, dy, ny), uniform(z0, dz, nz), vals,
	)
}

// NewTriCubicArray creates n zero-valued TriCubics of size m x l x k, one
// for each slice of a 4D table.
func NewTriCubicArray(n, m, l, k int) ([]*TriCubic, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: cannot create %d TriCubics", ErrTooSmall, n)
	} else if err := checkGridSize3(m, l, k); err != nil {
		return nil, err
	}

	tris := make([]*TriCubic, n)
	for i := range tris {
		tris[i] = newTriCubic(m, l, k)
	}
	return tris, nil
}

// Dims returns the number of tabulated points along each axis.
func (tri *TriCubic) Dims() (n, m, l int) {
	return len(tri.x1), len(tri.x2), len(tri.x3)
}

// ResetData replaces the table of the TriCubic. The new table must have the
// same shape as the one given at construction. The derivative cache is
// invalidated.
func (tri *TriCubic) ResetData(
	x1, x2, x3 []float64, vals [][][]float64,
) error {
	if err := checkGrid3(x1, x2, x3, vals); err != nil {
		return err
	}

	n, m, l := tri.Dims()
	if len(x1) != n || len(x2) != m || len(x3) != l {
		return fmt.Errorf(
			"%w: TriCubic was built for a %d x %d x %d grid, but was "+
				"given %d x %d x %d", ErrLength, n, m, l,
			len(x1), len(x2), len(x3),
		)
	}

	tri.load(x1, x2, x3, vals)
	return nil
}

// load copies a validated table into the TriCubic.
func (tri *TriCubic) load(x1, x2, x3 []float64, vals [][][]float64) {
	copy(tri.x1, x1)
	copy(tri.x2, x2)
	copy(tri.x3, x3)
	copy3(tri.vals, vals)
	tri.cache.Invalidate()
}

// Eval evaluates the tricubic spline at (x1, x2, x3). Points outside the
// table are extrapolated from the boundary segments of the underlying
// splines.
func (tri *TriCubic) Eval(x1, x2, x3 float64) float64 {
	for i, bi := range tri.slices {
		// Every slice is refreshed with its table on each call. Only the
		// second derivatives are reused across calls.
		bi.bind(tri.x2, tri.x3, tri.vals[i], tri.cache.slice(i))
		if tri.cache.valid {
			bi.adoptY2s()
		}
		tri.slab[i] = bi.Eval(x2, x3)
	}
	tri.cache.valid = true

	tri.outer.bind(tri.x1, tri.slab)
	return tri.outer.Eval(x1)
}

// EvalAll evaluates the TriCubic at every point (xs[i], ys[i], zs[i]).
func (tri *TriCubic) EvalAll(xs, ys, zs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = tri.Eval(xs[i], ys[i], zs[i])
	}
	return out[0]
}

// fill computes the derivative cache if it isn't valid.
func (tri *TriCubic) fill() {
	if tri.cache.valid {
		return
	}
	for i, bi := range tri.slices {
		bi.bind(tri.x2, tri.x3, tri.vals[i], tri.cache.slice(i))
		bi.fit()
	}
	tri.cache.valid = true
}

// Y2s returns a copy of the n x m x l second derivative cache, computing it
// first if needed. The result can be handed to SetY2s of another TriCubic
// with the same table.
func (tri *TriCubic) Y2s() [][][]float64 {
	tri.fill()
	return tri.cache.Copy()
}

// SetY2s loads the n x m x l second derivative cache, so that evaluations
// skip every inner tridiagonal solve. y2s is copied.
func (tri *TriCubic) SetY2s(y2s [][][]float64) error {
	return tri.cache.Load(y2s)
}

// Cache returns the TriCubic's derivative cache.
func (tri *TriCubic) Cache() *DerivCache { return tri.cache }

// Ref returns a copy of the TriCubic with its own tables and cache. The
// copy can be used on another goroutine.
func (tri *TriCubic) Ref() TriInterpolator {
	n, m, l := tri.Dims()
	cp := newTriCubic(n, m, l)
	cp.load(tri.x1, tri.x2, tri.x3, tri.vals)
	copy3(cp.cache.y2s, tri.cache.y2s)
	cp.cache.valid = tri.cache.valid
	return cp
}

////////////////
// Validation //
////////////////

func checkGridSize2(m, l int) error {
	if m < MinPoints || l < MinPoints {
		return fmt.Errorf(
			"%w: tabulated grid is %d x %d, but must be at least %d x %d",
			ErrTooSmall, m, l, MinPoints, MinPoints,
		)
	}
	return nil
}

func checkGridSize3(n, m, l int) error {
	if n < MinPoints || m < MinPoints || l < MinPoints {
		return fmt.Errorf(
			"%w: tabulated grid is %d x %d x %d, but must be at least "+
				"%d x %d x %d", ErrTooSmall, n, m, l,
			MinPoints, MinPoints, MinPoints,
		)
	}
	return nil
}

// checkGrid2 checks that vals[i][j] is tabulated at (xs[i], ys[j]).
func checkGrid2(xs, ys []float64, vals [][]float64) error {
	if len(xs) != len(vals) {
		return fmt.Errorf(
			"%w: len(xs) = %d, but len(vals) = %d",
			ErrLength, len(xs), len(vals),
		)
	} else if err := checkSize("xs", len(xs)); err != nil {
		return err
	}

	for i := range vals {
		if len(vals[i]) != len(ys) {
			return fmt.Errorf(
				"%w: len(ys) = %d, but len(vals[%d]) = %d",
				ErrLength, len(ys), i, len(vals[i]),
			)
		}
	}
	if err := checkSize("ys", len(ys)); err != nil {
		return err
	}

	if err := checkMonotonic("xs", xs); err != nil {
		return err
	}
	return checkMonotonic("ys", ys)
}

// checkGrid3 checks that vals[i][j][k] is tabulated at (x1[i], x2[j], x3[k]).
func checkGrid3(x1, x2, x3 []float64, vals [][][]float64) error {
	if len(x1) != len(vals) {
		return fmt.Errorf(
			"%w: len(x1) = %d, but len(vals) = %d",
			ErrLength, len(x1), len(vals),
		)
	} else if err := checkSize("x1", len(x1)); err != nil {
		return err
	}

	for i := range vals {
		if len(vals[i]) != len(x2) {
			return fmt.Errorf(
				"%w: len(x2) = %d, but len(vals[%d]) = %d",
				ErrLength, len(x2), i, len(vals[i]),
			)
		}
	}
	if err := checkSize("x2", len(x2)); err != nil {
		return err
	}

	for i := range vals {
		for j := range vals[i] {
			if len(vals[i][j]) != len(x3) {
				return fmt.Errorf(
					"%w: len(x3) = %d, but len(vals[%d][%d]) = %d",
					ErrLength, len(x3), i, j, len(vals[i][j]),
				)
			}
		}
	}
	if err := checkSize("x3", len(x3)); err != nil {
		return err
	}

	for _, axis := range []struct {
		name string
		xs   []float64
	}{{"x1", x1}, {"x2", x2}, {"x3", x3}} {
		if err := checkMonotonic(axis.name, axis.xs); err != nil {
			return err
		}
	}
	return nil
}
