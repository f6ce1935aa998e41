package interpolate

import (
	"flag"
	"math"
	"math/rand"
	"testing"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var plot = flag.Bool("plot", false, "Show diagnostic spline plots.")

func linspace(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

func mustSpline(t *testing.T, xs, ys []float64) *Spline {
	t.Helper()
	sp, err := NewSpline(xs, ys)
	require.NoError(t, err)
	return sp
}

func TestSplineNodes(t *testing.T) {
	xs := []float64{0, 1, 1.5, 2, 3, 4, 5}
	ys := []float64{2, 1, 1, 0, 2, 3, 1}

	sp := mustSpline(t, xs, ys)
	for i := range xs {
		assert.InDelta(t, ys[i], sp.Eval(xs[i]), 1e-12, "node %d", i)
	}
}

func TestSplineKnownValues(t *testing.T) {
	// The interior second derivative of this table is -3.
	sp := mustSpline(t, []float64{0, 1, 2}, []float64{0, 1, 0})

	assert.InDeltaSlice(t, []float64{0, -3, 0}, sp.Y2s(), 1e-12)
	assert.InDelta(t, 0.6875, sp.Eval(0.5), 1e-12)
	assert.InDelta(t, 0.6875, sp.Eval(1.5), 1e-12)
	assert.InDelta(t, 1.125, sp.Deriv(0.5, 1), 1e-12)
	assert.InDelta(t, -3, sp.Deriv(1, 2), 1e-12)
	assert.InDelta(t, 3, sp.Deriv(1.5, 3), 1e-12)
	assert.Equal(t, 0.0, sp.Deriv(1.5, 4))
	assert.InDelta(t, 1.25, sp.Integrate(0, 2), 1e-12)
	assert.InDelta(t, 0.625, sp.Integrate(0, 1), 1e-12)
}

func TestSplineLinear(t *testing.T) {
	f := func(x float64) float64 { return 2*x + 1 }
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = f(xs[i])
	}
	sp := mustSpline(t, xs, ys)

	// Natural splines reproduce straight lines exactly, and so does the
	// boundary extrapolation.
	for _, x := range []float64{-1, 0, 0.3, 2.5, 4.99, 5, 6.5} {
		assert.InDelta(t, f(x), sp.Eval(x), 1e-12, "x = %g", x)
	}

	assert.InDelta(t, 30, sp.Integrate(0, 5), 1e-12)
	assert.InDelta(t, -30, sp.Integrate(5, 0), 1e-12)
	assert.InDelta(t, 6.5625, sp.Integrate(0.5, 2.25), 1e-12)
}

func TestSplineDecreasing(t *testing.T) {
	xs := []float64{0, 1, 1.5, 2, 3, 4, 5}
	ys := []float64{2, 1, 1, 0, 2, 3, 1}
	rxs, rys := make([]float64, len(xs)), make([]float64, len(ys))
	for i := range xs {
		rxs[len(xs)-1-i], rys[len(ys)-1-i] = xs[i], ys[i]
	}

	incr, decr := mustSpline(t, xs, ys), mustSpline(t, rxs, rys)
	for _, x := range linspace(-0.5, 5.5, 61) {
		assert.InDelta(t, incr.Eval(x), decr.Eval(x), 1e-10, "x = %g", x)
	}
	assert.InDelta(t, incr.Integrate(0.2, 4.3), decr.Integrate(0.2, 4.3), 1e-10)
}

func TestSplineErrors(t *testing.T) {
	_, err := NewSpline([]float64{0, 1, 2}, []float64{0, 1})
	assert.ErrorIs(t, err, ErrLength)

	_, err = NewSpline([]float64{0, 1}, []float64{0, 1})
	assert.ErrorIs(t, err, ErrTooSmall)

	_, err = NewZeroSpline(2)
	assert.ErrorIs(t, err, ErrTooSmall)

	_, err = NewSpline([]float64{0, 1, 1, 2}, []float64{0, 1, 2, 3})
	assert.ErrorIs(t, err, ErrNotMonotonic)

	_, err = NewSpline([]float64{0, 2, 1, 3}, []float64{0, 1, 2, 3})
	assert.ErrorIs(t, err, ErrNotMonotonic)

	sp := mustSpline(t, []float64{0, 1, 2}, []float64{0, 1, 0})
	err = sp.Init([]float64{0, 1, 2, 3}, []float64{0, 1, 0, 1})
	assert.ErrorIs(t, err, ErrLength)
	err = sp.SetY2s([]float64{0, 0})
	assert.ErrorIs(t, err, ErrLength)

	// Failed calls leave the table alone.
	assert.InDelta(t, 0.6875, sp.Eval(0.5), 1e-12)
}

func TestSplineInit(t *testing.T) {
	sp, err := NewZeroSpline(4)
	require.NoError(t, err)
	assert.Equal(t, 4, sp.Len())

	xs := []float64{0, 1, 2, 3}
	require.NoError(t, sp.Init(xs, []float64{0, 1, 4, 9}))
	first := sp.Eval(1.5)

	// Init copies, so the caller may reuse its slices.
	ys := []float64{3, 3, 3, 3}
	require.NoError(t, sp.Init(xs, ys))
	ys[1] = 100
	assert.Equal(t, 3.0, sp.Eval(1.5))
	assert.NotEqual(t, first, sp.Eval(1.5))
}

func TestSplineY2sRoundTrip(t *testing.T) {
	xs := []float64{0, 1, 1.5, 2, 3, 4, 5}
	ys := []float64{2, 1, 1, 0, 2, 3, 1}
	sp := mustSpline(t, xs, ys)

	cp, err := NewZeroSpline(len(xs))
	require.NoError(t, err)
	require.NoError(t, cp.Init(xs, ys))
	require.NoError(t, cp.SetY2s(sp.Y2s()))

	ref := sp.Ref()
	for _, x := range linspace(0, 5, 41) {
		assert.Equal(t, sp.Eval(x), cp.Eval(x))
		assert.Equal(t, sp.Eval(x), ref.Eval(x))
	}

	out := make([]float64, 3)
	got := sp.EvalAll([]float64{0, 1, 2}, out)
	assert.InDeltaSlice(t, []float64{2, 1, 0}, got, 1e-12)
	assert.Equal(t, out, got)
}

func TestUniformSpline(t *testing.T) {
	ys := []float64{2, 1, 1, 0, 2}
	sp, err := NewUniformSpline(1, 0.5, ys)
	require.NoError(t, err)
	ref := mustSpline(t, []float64{1, 1.5, 2, 2.5, 3}, ys)

	for _, x := range linspace(1, 3, 17) {
		assert.InDelta(t, ref.Eval(x), sp.Eval(x), 1e-12)
	}
}

func TestTriDiagAgainstGonum(t *testing.T) {
	rand.Seed(0)
	n := 12

	as, bs := make([]float64, n), make([]float64, n)
	cs, rs := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		as[i], cs[i] = rand.Float64(), rand.Float64()
		bs[i] = 3 + rand.Float64()
		rs[i] = 2*rand.Float64() - 1
	}
	us := TriDiag(as, bs, cs, rs)

	d := make([]float64, n)
	copy(d, bs)
	dl, du := make([]float64, n-1), make([]float64, n-1)
	copy(dl, as[1:])
	copy(du, cs[:n-1])
	a := mat.NewTridiag(n, dl, d, du)

	var want mat.VecDense
	b := mat.NewVecDense(n, append([]float64(nil), rs...))
	require.NoError(t, a.SolveVecTo(&want, false, b))

	assert.True(t, floats.EqualApprox(us, want.RawVector().Data, 1e-12))
}

func TestTriDiagPanics(t *testing.T) {
	assert.Panics(t, func() {
		TriDiag([]float64{0, 1}, []float64{0, 1}, []float64{1, 0}, []float64{1, 1})
	})
	assert.Panics(t, func() {
		TriDiagAt([]float64{0}, []float64{1}, []float64{0}, []float64{1}, nil)
	})
}

func TestPyplotSpline(t *testing.T) {
	if !*plot {
		t.Skip("Run with -plot to see spline plots.")
	}

	splinePlot := func(xs, ys []float64) {
		sp := mustSpline(t, xs, ys)
		spXs := linspace(xs[0]-0.5, xs[len(xs)-1]+0.5, 100)
		plt.Figure()
		plt.Plot(spXs, sp.EvalAll(spXs), "b", plt.LW(3))
		plt.Plot(xs, ys, "ok")
	}

	splinePlot([]float64{0, 1, 2, 3, 4}, []float64{2, 3, 4, 5, 6})
	splinePlot([]float64{0, 0.5, 1, 1.5, 2}, []float64{0, 0.25, 1, 2.25, 4})
	xs := linspace(-1, 1, 10)
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = math.Sin(3 * xs[i])
	}
	splinePlot(xs, ys)

	plt.Execute()
}
