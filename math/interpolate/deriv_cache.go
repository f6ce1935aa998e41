package interpolate

import (
	"fmt"
)

// DerivCache holds the second derivatives of every row spline inside a
// TriCubic: y2s[i][j] is the second derivative table of row j of slice i.
// These depend only on the tabulated values, not on the point being
// evaluated, so once they are known every later evaluation skips the
// tridiagonal solves of the inner layers.
//
// The cache is owned by exactly one TriCubic, which invalidates it whenever
// its table is replaced.
type DerivCache struct {
	y2s   [][][]float64
	valid bool
}

func newDerivCache(n, m, l int) *DerivCache {
	return &DerivCache{y2s: zero3(n, m, l)}
}

// Valid returns true if the cache matches the current table of its owner.
func (c *DerivCache) Valid() bool { return c.valid }

// Invalidate marks the cache as stale. The next evaluation of its owner will
// recompute it.
func (c *DerivCache) Invalidate() { c.valid = false }

// Dims returns the dimensions of the cached table.
func (c *DerivCache) Dims() (n, m, l int) {
	return len(c.y2s), len(c.y2s[0]), len(c.y2s[0][0])
}

// Copy returns a deep copy of the cached second derivatives.
func (c *DerivCache) Copy() [][][]float64 {
	n, m, l := c.Dims()
	out := zero3(n, m, l)
	copy3(out, c.y2s)
	return out
}

// Load copies y2s into the cache and marks it valid.
func (c *DerivCache) Load(y2s [][][]float64) error {
	n, m, l := c.Dims()
	if len(y2s) != n {
		return fmt.Errorf(
			"%w: cache holds %d slices, but was given %d", ErrLength, n, len(y2s),
		)
	}
	for i := range y2s {
		if len(y2s[i]) != m {
			return fmt.Errorf(
				"%w: cache holds %d rows per slice, but slice %d has %d",
				ErrLength, m, i, len(y2s[i]),
			)
		}
		for j := range y2s[i] {
			if len(y2s[i][j]) != l {
				return fmt.Errorf(
					"%w: cache holds %d points per row, but row [%d][%d] has %d",
					ErrLength, l, i, j, len(y2s[i][j]),
				)
			}
		}
	}

	copy3(c.y2s, y2s)
	c.valid = true
	return nil
}

// slice returns the storage for slice i. Inner engines write to it directly.
func (c *DerivCache) slice(i int) [][]float64 { return c.y2s[i] }

func zero2(m, l int) [][]float64 {
	backing := make([]float64, m*l)
	out := make([][]float64, m)
	for j := range out {
		out[j] = backing[j*l : (j+1)*l : (j+1)*l]
	}
	return out
}

func zero3(n, m, l int) [][][]float64 {
	out := make([][][]float64, n)
	for i := range out {
		out[i] = zero2(m, l)
	}
	return out
}

// copy2 copies src into dst. Both must have the same shape.
func copy2(dst, src [][]float64) {
	for j := range dst {
		copy(dst[j], src[j])
	}
}

// copy3 copies src into dst. Both must have the same shape.
func copy3(dst, src [][][]float64) {
	for i := range dst {
		copy2(dst[i], src[i])
	}
}
