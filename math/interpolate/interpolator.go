/*package interpolate implements natural cubic spline interpolators for
functions tabulated on regular grids in one through four dimensions.

Higher dimensional interpolators are built by composition: a TriCubic owns one
BiCubic per slice along its first axis, and each BiCubic owns one Spline per
row. Every interpolator caches state between calls, so none of them are safe
for concurrent use. Each goroutine should get its own copy through Ref, or
share a single TriCubic through a SyncTriCubic.
*/
package interpolate

import (
	"errors"
	"fmt"
)

// MinPoints is the smallest number of tabulated points allowed along any
// axis.
const MinPoints = 3

var (
	// ErrTooSmall is returned when some axis of a table has fewer than
	// MinPoints points.
	ErrTooSmall = errors.New("table too small")
	// ErrLength is returned when coordinate and value arrays disagree on the
	// shape of a table, or when a table is replaced by one of a different
	// shape.
	ErrLength = errors.New("table lengths do not match")
	// ErrNotMonotonic is returned when a coordinate array is not strictly
	// increasing or strictly decreasing.
	ErrNotMonotonic = errors.New("coordinates not strictly monotonic")
)

// Interpolator is a 1D interpolator. These interpolators all use caching, so
// they are not thread safe.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequeunce of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
	// Ref creates a copy of the interpolator with its own cache. Each
	// goroutine using the same interpolator must make a copy with Ref first.
	Ref() Interpolator
}

var (
	_ Interpolator = &Spline{}
)

// BiInterpolator is a 2D interpolator. These interpolators all use caching, so
// they are not thread safe.
type BiInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y float64) float64
	// EvalAll evaluates a sequeunce of points and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs, ys []float64, out ...[]float64) []float64
	// Ref creates a copy of the interpolator with its own cache.
	Ref() BiInterpolator
}

var (
	_ BiInterpolator = &BiCubic{}
)

// TriInterpolator is a 3D interpolator. These interpolators all use caching,
// so they are not thread safe.
type TriInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y, z float64) float64
	// EvalAll evaluates a sequeunce of points and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs, ys, zs []float64, out ...[]float64) []float64
	// Ref creates a copy of the interpolator with its own cache.
	Ref() TriInterpolator
}

var (
	_ TriInterpolator = &TriCubic{}
	_ TriInterpolator = &SyncTriCubic{}
)

// QuadInterpolator is a 4D interpolator.
type QuadInterpolator interface {
	Eval(x, y, z, w float64) float64
	EvalAll(xs, ys, zs, ws []float64, out ...[]float64) []float64
	Ref() QuadInterpolator
}

var (
	_ QuadInterpolator = &QuadCubic{}
)

// checkSize returns an error if an axis of the given name has fewer than
// MinPoints points.
func checkSize(name string, n int) error {
	if n < MinPoints {
		return fmt.Errorf(
			"%w: %s has %d points, but at least %d are needed",
			ErrTooSmall, name, n, MinPoints,
		)
	}
	return nil
}

// checkMonotonic returns an error if xs is neither strictly increasing nor
// strictly decreasing.
func checkMonotonic(name string, xs []float64) error {
	incr := xs[len(xs)-1] > xs[0]
	for i := 1; i < len(xs); i++ {
		if (incr && xs[i] > xs[i-1]) || (!incr && xs[i] < xs[i-1]) {
			continue
		}
		return fmt.Errorf(
			"%w: %s[%d] = %g does not follow %s[%d] = %g",
			ErrNotMonotonic, name, i, xs[i], name, i-1, xs[i-1],
		)
	}
	return nil
}

// uniform returns n points starting at x0 and separated by dx.
func uniform(x0, dx float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = x0 + float64(i)*dx
	}
	return xs
}
