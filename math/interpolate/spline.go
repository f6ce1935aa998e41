package interpolate

import (
	"fmt"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points. The second derivative of the spline vanishes at
// both ends of the table.
//
// The second derivatives at each point are solved for lazily, the first time
// the spline is evaluated after its table changes. They can also be read out
// with Y2s and injected with SetY2s, which skips the solve entirely.
type Spline struct {
	xs, ys, y2s []float64
	// fitted is true when y2s matches the current table.
	fitted bool

	incr bool
	// Usually the input data is uniform. This is our estimate of the point
	// spacing.
	dx float64

	// Scratch space for the tridiagonal solve.
	as, bs, cs, rs, tmp []float64
}

// NewZeroSpline creates a spline with room for n points, all of which are
// zero. Init must be called before the spline is evaluated.
func NewZeroSpline(n int) (*Spline, error) {
	if err := checkSize("Spline table", n); err != nil {
		return nil, err
	}
	return newSpline(n), nil
}

func newSpline(n int) *Spline {
	sp := newSplineShell(n)
	sp.xs = make([]float64, n)
	sp.ys = make([]float64, n)
	sp.y2s = make([]float64, n)
	return sp
}

// newSplineShell creates a spline without any table storage. The caller
// must provide it through bind and by setting y2s.
func newSplineShell(n int) *Spline {
	sp := &Spline{}
	work := make([]float64, 5*(n-2))
	sp.as, sp.bs = work[0:n-2], work[n-2:2*(n-2)]
	sp.cs, sp.rs = work[2*(n-2):3*(n-2)], work[3*(n-2):4*(n-2)]
	sp.tmp = work[4*(n-2):]

	sp.incr = true
	return sp
}

// NewSpline creates a spline based off a table of x and y values. The values
// must be sorted in strictly increasing or strictly decreasing order in x.
// The table is copied.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"%w: Spline table has len(xs) = %d, but len(ys) = %d",
			ErrLength, len(xs), len(ys),
		)
	}

	sp, err := NewZeroSpline(len(xs))
	if err != nil {
		return nil, err
	}
	if err = sp.Init(xs, ys); err != nil {
		return nil, err
	}
	return sp, nil
}

// NewUniformSpline creates a spline over n uniformly spaced points starting
// at x0 and separated by dx.
func NewUniformSpline(x0, dx float64, ys []float64) (*Spline, error) {
	return NewSpline(uniform(x0, dx, len(ys)), ys)
}

// Init reinitializes a spline to use a new sequence of points without doing
// any additional heap allocations. |xs| and |ys| must be the same as the
// previous point set.
func (sp *Spline) Init(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf(
			"%w: Spline table has len(xs) = %d, but len(ys) = %d",
			ErrLength, len(xs), len(ys),
		)
	} else if len(xs) != len(sp.xs) {
		return fmt.Errorf(
			"%w: Spline was built for %d points, but was given %d",
			ErrLength, len(sp.xs), len(xs),
		)
	}
	if err := checkMonotonic("xs", xs); err != nil {
		return err
	}

	copy(sp.xs, xs)
	copy(sp.ys, ys)
	sp.reset()
	return nil
}

// bind points the spline at tables owned by its caller. Nothing is copied,
// so the caller must not change xs or ys without calling bind or reset
// again.
func (sp *Spline) bind(xs, ys []float64) {
	sp.xs, sp.ys = xs, ys
	sp.reset()
}

// reset marks the second derivatives as stale after the table has changed.
func (sp *Spline) reset() {
	n := len(sp.xs)
	sp.incr = sp.xs[n-1] > sp.xs[0]
	sp.dx = (sp.xs[n-1] - sp.xs[0]) / float64(n-1)
	sp.fitted = false
}

// Len returns the number of points in the spline's table.
func (sp *Spline) Len() int { return len(sp.xs) }

// Eval computes the value of the spline at the given point.
//
// Points outside the table are extrapolated with the cubic of the nearest
// boundary segment.
func (sp *Spline) Eval(x float64) float64 {
	if !sp.fitted {
		sp.fit()
	}

	i := sp.segment(x)
	c := sp.coeff(i)
	dx := x - sp.xs[i]
	return ((c.a*dx+c.b)*dx+c.c)*dx + c.d
}

// EvalAll evaluates the spline at all the given x values. If an output array
// is given, the output is written to that array (the array is still returned
// as a convenience).
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = sp.Eval(xs[i])
	}
	return out[0]
}

// Deriv computes the derivative of spline at the given point to the
// specified order.
func (sp *Spline) Deriv(x float64, order int) float64 {
	if !sp.fitted {
		sp.fit()
	}

	i := sp.segment(x)
	dx := x - sp.xs[i]
	c := sp.coeff(i)
	switch order {
	case 0:
		return ((c.a*dx+c.b)*dx+c.c)*dx + c.d
	case 1:
		return 3*c.a*dx*dx + 2*c.b*dx + c.c
	case 2:
		return 6*c.a*dx + 2*c.b
	case 3:
		return 6 * c.a
	default:
		return 0
	}
}

// Integrate integrates the spline from lo to hi.
func (sp *Spline) Integrate(lo, hi float64) float64 {
	if !sp.fitted {
		sp.fit()
	}

	iLo, iHi := sp.segment(lo), sp.segment(hi)
	if iLo > iHi {
		return -sp.Integrate(hi, lo)
	} else if iLo == iHi {
		return sp.integTerm(iLo, lo, hi)
	}

	sum := sp.integTerm(iLo, lo, sp.xs[iLo+1]) +
		sp.integTerm(iHi, sp.xs[iHi], hi)
	for i := iLo + 1; i < iHi; i++ {
		sum += sp.integTerm(i, sp.xs[i], sp.xs[i+1])
	}
	return sum
}

// integTerm integrates the cubic of segment i from lo to hi.
func (sp *Spline) integTerm(i int, lo, hi float64) float64 {
	c := sp.coeff(i)
	prim := func(dx float64) float64 {
		return dx * (c.d + dx*(c.c/2+dx*(c.b/3+dx*c.a/4)))
	}
	return prim(hi-sp.xs[i]) - prim(lo-sp.xs[i])
}

// Y2s returns a copy of the second derivative of the spline at every point
// in its table.
func (sp *Spline) Y2s() []float64 {
	if !sp.fitted {
		sp.fit()
	}
	out := make([]float64, len(sp.y2s))
	copy(out, sp.y2s)
	return out
}

// SetY2s sets the second derivatives of the spline at every point in its
// table, so the next evaluation can skip solving for them. y2s is copied.
func (sp *Spline) SetY2s(y2s []float64) error {
	if len(y2s) != len(sp.y2s) {
		return fmt.Errorf(
			"%w: Spline has %d points, but was given %d second derivatives",
			ErrLength, len(sp.y2s), len(y2s),
		)
	}
	copy(sp.y2s, y2s)
	sp.fitted = true
	return nil
}

// Ref returns a copy of the spline with its own table and cache.
func (sp *Spline) Ref() Interpolator {
	cp := newSpline(len(sp.xs))
	copy(cp.xs, sp.xs)
	copy(cp.ys, sp.ys)
	copy(cp.y2s, sp.y2s)
	cp.fitted, cp.incr, cp.dx = sp.fitted, sp.incr, sp.dx
	return cp
}

// before returns true if x comes strictly before y in the spline's ordering.
func (sp *Spline) before(x, y float64) bool {
	if sp.incr {
		return x < y
	}
	return x > y
}

// segment returns the index of the table segment containing x. Points
// outside the table belong to the nearest boundary segment.
func (sp *Spline) segment(x float64) int {
	n := len(sp.xs)
	if !sp.before(sp.xs[0], x) {
		return 0
	} else if !sp.before(x, sp.xs[n-1]) {
		return n - 2
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - sp.xs[0]) / sp.dx)
	if guess >= 0 && guess < n-1 &&
		!sp.before(x, sp.xs[guess]) && !sp.before(sp.xs[guess+1], x) {

		return guess
	}

	// Binary search.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if sp.before(x, sp.xs[mid]) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// coeff returns the polynomial coefficients of segment i in powers of
// x - xs[i].
func (sp *Spline) coeff(i int) splineCoeff {
	xs, ys, y2s := sp.xs, sp.ys, sp.y2s
	dx := xs[i+1] - xs[i]
	return splineCoeff{
		a: (y2s[i+1] - y2s[i]) / (6 * dx),
		b: y2s[i] / 2,
		c: (ys[i+1]-ys[i])/dx - dx*(y2s[i]/3+y2s[i+1]/6),
		d: ys[i],
	}
}

// fit computes the second derivative at every point in the table.
func (sp *Spline) fit() {
	n := len(sp.xs)
	as, bs, cs, rs := sp.as, sp.bs, sp.cs, sp.rs

	// Solve for everything but the boundaries, which are fixed at zero.
	sp.y2s[0], sp.y2s[n-1] = 0, 0

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	triDiagAt(as, bs, cs, rs, sp.y2s[1:n-1], sp.tmp)
	sp.fitted = true
}

// TriDiagAt solves the system of equations
//
// | b0 c0 ..    |   | out0 |   | r0 |
// | a1 b1 c1 .. |   | out1 |   | r1 |
// | ..          | * | ..   | = | .. |
// | ..    an bn |   | outn |   | rn |
//
// For out0 .. outn in place in the given slice. a0 and cn are ignored.
//
// TriDiagAt panics if the system cannot be solved without pivoting.
func TriDiagAt(as, bs, cs, rs, out []float64) {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {

		panic("Length of arguments to TriDiagAt are unequal.")
	}
	triDiagAt(as, bs, cs, rs, out, make([]float64, len(as)))
}

func triDiagAt(as, bs, cs, rs, out, tmp []float64) {
	beta := bs[0]
	if beta == 0 {
		panic("TriDiagAt cannot solve given system.")
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			panic("TriDiagAt cannot solve given system.")
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
}

// TriDiag solves the system of equations
//
// | b0 c0 ..    |   | u0 |   | r0 |
// | a1 b1 c1 .. |   | u1 |   | r1 |
// | ..          | * | .. | = | .. |
// | ..    an bn |   | un |   | rn |
//
// For u0 .. un.
func TriDiag(as, bs, cs, rs []float64) []float64 {
	us := make([]float64, len(as))
	TriDiagAt(as, bs, cs, rs, us)
	return us
}
