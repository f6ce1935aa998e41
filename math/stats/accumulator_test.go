package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// monthlyCounts is a seasonal count series with a strong upward trend.
var monthlyCounts = []float64{
	112, 118, 132, 129, 121, 135, 148, 148, 136, 119, 104, 118,
	115, 126, 141, 135, 125, 149, 170, 170, 158, 133, 114, 140,
	145, 150, 178, 163, 172, 178, 199, 199, 184, 162, 146, 166,
	171, 180, 193, 181, 183, 218, 230, 242, 209, 191, 172, 194,
	196, 196, 236, 235, 229, 243, 264, 272, 237, 211, 180, 201,
	204, 188, 235, 227, 234, 264, 302, 293, 259, 229, 203, 229,
	242, 233, 267, 269, 270, 315, 364, 347, 312, 274, 237, 278,
	284, 277, 317, 313, 318, 374, 413, 405, 355, 306, 271, 306,
	315, 301, 356, 348, 355, 422, 465, 467, 404, 347, 305, 336,
	340, 318, 362, 348, 363, 435, 491, 505, 404, 359, 310, 337,
	360, 342, 406, 396, 420, 472, 548, 559, 463, 407, 362, 405,
	417, 391, 419, 461, 472, 535, 622, 606, 508, 461, 390, 432,
}

func TestAccumulatorReference(t *testing.T) {
	require.Len(t, monthlyCounts, 144)

	acc := &Accumulator{}
	for _, x := range monthlyCounts {
		acc.Add(x)
	}

	assert.Equal(t, 144, acc.Count())
	assert.InDelta(t, 280.2986111, acc.Mean(), 1e-3)
	assert.InDelta(t, 14291.97333, acc.Variance(), 1e-3)
	assert.InDelta(t, math.Sqrt(14291.97333), acc.StdDev(), 1e-3)
	assert.InDelta(t, 0.577068235, acc.Skewness(), 1e-6)
	assert.InDelta(t, -0.393772171, acc.Kurtosis(), 1e-6)
	assert.Equal(t, 104.0, acc.Min())
	assert.Equal(t, 622.0, acc.Max())
}

func TestAccumulatorAgainstGonum(t *testing.T) {
	rand.Seed(1)
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = 1e4 + rand.ExpFloat64()
	}

	acc := &Accumulator{}
	acc.AddAll(xs)

	mean, variance := stat.PopMeanVariance(xs, nil)
	m2 := stat.Moment(2, xs, nil)
	skew := stat.Moment(3, xs, nil) / math.Pow(m2, 1.5)
	kurt := stat.Moment(4, xs, nil)/(m2*m2) - 3

	tests := []struct {
		name      string
		got, want float64
	}{
		{"mean", acc.Mean(), mean},
		{"variance", acc.Variance(), variance},
		{"skewness", acc.Skewness(), skew},
		{"kurtosis", acc.Kurtosis(), kurt},
	}
	for _, test := range tests {
		assert.True(t,
			scalar.EqualWithinAbsOrRel(test.got, test.want, 1e-9, 1e-7),
			"%s: got %g, want %g", test.name, test.got, test.want)
	}
}

func TestAccumulatorEdgeCases(t *testing.T) {
	acc := &Accumulator{}
	assert.Equal(t, 0, acc.Count())
	assert.True(t, math.IsNaN(acc.Mean()))
	assert.True(t, math.IsNaN(acc.Variance()))
	assert.True(t, math.IsNaN(acc.Min()))
	assert.True(t, math.IsNaN(acc.Max()))

	acc.AddAll([]float64{-2, -2, -2})
	assert.Equal(t, -2.0, acc.Mean())
	assert.Equal(t, 0.0, acc.Variance())
	assert.True(t, math.IsNaN(acc.Skewness()))
	assert.True(t, math.IsNaN(acc.Kurtosis()))

	acc.Reset()
	assert.Equal(t, 0, acc.Count())
	acc.AddAll([]float64{1, 2, 3, 4})
	assert.Equal(t, 2.5, acc.Mean())
	assert.Equal(t, 1.25, acc.Variance())
	assert.InDelta(t, 0, acc.Skewness(), 1e-12)
	assert.InDelta(t, -1.36, acc.Kurtosis(), 1e-12)
	assert.Equal(t, 1.0, acc.Min())
	assert.Equal(t, 4.0, acc.Max())
}
