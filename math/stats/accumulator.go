/*package stats computes running descriptive statistics over a stream of
samples without storing them.
*/
package stats

import (
	"math"
)

// Accumulator tracks the count, extrema, and first four central moments of
// the samples added to it. Moments are updated online, so Add is O(1) and
// numerically stable for long streams.
//
// All of the higher moments are population moments: Variance divides by n,
// not n - 1.
type Accumulator struct {
	n                int
	mean, m2, m3, m4 float64
	min, max         float64
}

// Add adds a single sample.
func (acc *Accumulator) Add(x float64) {
	if acc.n == 0 {
		acc.min, acc.max = x, x
	} else {
		acc.min, acc.max = math.Min(acc.min, x), math.Max(acc.max, x)
	}

	n1 := float64(acc.n)
	acc.n++
	n := float64(acc.n)

	delta := x - acc.mean
	dn := delta / n
	dn2 := dn * dn
	term := delta * dn * n1

	acc.mean += dn
	acc.m4 += term*dn2*(n*n-3*n+3) + 6*dn2*acc.m2 - 4*dn*acc.m3
	acc.m3 += term*dn*(n-2) - 3*dn*acc.m2
	acc.m2 += term
}

// AddAll adds every sample in xs.
func (acc *Accumulator) AddAll(xs []float64) {
	for _, x := range xs {
		acc.Add(x)
	}
}

// Reset removes all samples.
func (acc *Accumulator) Reset() { *acc = Accumulator{} }

// Count returns the number of samples.
func (acc *Accumulator) Count() int { return acc.n }

// Mean returns the sample mean, or NaN if there are no samples.
func (acc *Accumulator) Mean() float64 {
	if acc.n == 0 {
		return math.NaN()
	}
	return acc.mean
}

// Variance returns the population variance, or NaN if there are no samples.
func (acc *Accumulator) Variance() float64 {
	if acc.n == 0 {
		return math.NaN()
	}
	return acc.m2 / float64(acc.n)
}

// StdDev returns the population standard deviation.
func (acc *Accumulator) StdDev() float64 { return math.Sqrt(acc.Variance()) }

// Skewness returns the population skewness, g1. It is NaN when the samples
// have no spread.
func (acc *Accumulator) Skewness() float64 {
	if acc.n == 0 || acc.m2 == 0 {
		return math.NaN()
	}
	n := float64(acc.n)
	return math.Sqrt(n) * acc.m3 / math.Pow(acc.m2, 1.5)
}

// Kurtosis returns the population excess kurtosis, g2, which is zero for a
// normal distribution. It is NaN when the samples have no spread.
func (acc *Accumulator) Kurtosis() float64 {
	if acc.n == 0 || acc.m2 == 0 {
		return math.NaN()
	}
	n := float64(acc.n)
	return n*acc.m4/(acc.m2*acc.m2) - 3
}

// Min returns the smallest sample, or NaN if there are no samples.
func (acc *Accumulator) Min() float64 {
	if acc.n == 0 {
		return math.NaN()
	}
	return acc.min
}

// Max returns the largest sample, or NaN if there are no samples.
func (acc *Accumulator) Max() float64 {
	if acc.n == 0 {
		return math.NaN()
	}
	return acc.max
}
