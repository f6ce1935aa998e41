package eval

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/tricubic/math/interpolate"
)

func testTriCubic(t testing.TB) *interpolate.TriCubic {
	x1 := floats.Span(make([]float64, 6), 0, 1)
	x2 := floats.Span(make([]float64, 5), -1, 1)
	x3 := floats.Span(make([]float64, 7), 2, 5)

	vals := make([][][]float64, len(x1))
	for i := range x1 {
		vals[i] = make([][]float64, len(x2))
		for j := range x2 {
			vals[i][j] = make([]float64, len(x3))
			for k := range x3 {
				vals[i][j][k] = math.Sin(x1[i]+x2[j]) * math.Log(x3[k])
			}
		}
	}

	tri, err := interpolate.NewTriCubic(x1, x2, x3, vals)
	require.NoError(t, err)
	return tri
}

func randomPoints(n int) (x1s, x2s, x3s []float64) {
	rand.Seed(7)
	x1s, x2s, x3s = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		x1s[i] = 1.2*rand.Float64() - 0.1
		x2s[i] = 2.2*rand.Float64() - 1.1
		x3s[i] = 3.2*rand.Float64() + 1.9
	}
	return x1s, x2s, x3s
}

func TestManagerMatchesSerial(t *testing.T) {
	x1s, x2s, x3s := randomPoints(500)
	serial := testTriCubic(t)
	want := serial.EvalAll(x1s, x2s, x3s)

	for _, workers := range []int{1, 3, 8} {
		man, err := NewManager(testTriCubic(t), workers)
		require.NoError(t, err)
		assert.Equal(t, workers, man.Workers())

		out := make([]float64, len(x1s))
		got := man.EvalAll(x1s, x2s, x3s, out)
		assert.Equal(t, want, got, "%d workers", workers)
		assert.Equal(t, out, got)

		// Managers can be reused.
		assert.Equal(t, want, man.EvalAll(x1s, x2s, x3s), "%d workers", workers)
	}
}

func TestManagerFewPoints(t *testing.T) {
	x1s, x2s, x3s := randomPoints(3)
	want := testTriCubic(t).EvalAll(x1s, x2s, x3s)

	man, err := NewManager(testTriCubic(t), 16)
	require.NoError(t, err)
	assert.Equal(t, want, man.EvalAll(x1s, x2s, x3s))
	assert.Empty(t, man.EvalAll(nil, nil, nil))
}

func TestManagerIsolation(t *testing.T) {
	tri := testTriCubic(t)
	man, err := NewManager(tri, 4)
	require.NoError(t, err)
	assert.True(t, tri.Cache().Valid())

	x1s, x2s, x3s := randomPoints(40)
	want := man.EvalAll(x1s, x2s, x3s)

	// Changing the original TriCubic doesn't affect the workers.
	n, m, l := tri.Dims()
	zeros := make([][][]float64, n)
	for i := range zeros {
		zeros[i] = make([][]float64, m)
		for j := range zeros[i] {
			zeros[i][j] = make([]float64, l)
		}
	}
	x1 := floats.Span(make([]float64, n), 0, 1)
	x2 := floats.Span(make([]float64, m), -1, 1)
	x3 := floats.Span(make([]float64, l), 2, 5)
	require.NoError(t, tri.ResetData(x1, x2, x3, zeros))

	assert.Equal(t, want, man.EvalAll(x1s, x2s, x3s))
}

func TestManagerErrors(t *testing.T) {
	_, err := NewManager(testTriCubic(t), 0)
	assert.Error(t, err)

	man, err := NewManager(testTriCubic(t), 2)
	require.NoError(t, err)
	assert.Panics(t, func() {
		man.EvalAll([]float64{0}, []float64{0, 1}, []float64{2})
	})
}

func BenchmarkManager4Workers(b *testing.B) {
	x1s, x2s, x3s := randomPoints(1000)
	man, err := NewManager(testTriCubic(b), 4)
	require.NoError(b, err)
	out := make([]float64, len(x1s))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		man.EvalAll(x1s, x2s, x3s, out)
	}
}
