package interpolate

import (
	"sync"
)

// SyncTriCubic serializes every call on a single TriCubic so it can be shared
// between goroutines. Goroutines which do heavy work against the same table
// are better off with their own copy from TriCubic.Ref.
type SyncTriCubic struct {
	mu  sync.Mutex
	tri *TriCubic
}

// NewSyncTriCubic wraps tri. tri must not be used directly afterwards.
func NewSyncTriCubic(tri *TriCubic) *SyncTriCubic {
	return &SyncTriCubic{tri: tri}
}

// Eval evaluates the wrapped TriCubic at (x1, x2, x3).
func (s *SyncTriCubic) Eval(x1, x2, x3 float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tri.Eval(x1, x2, x3)
}

// EvalAll evaluates the wrapped TriCubic at every point while holding the
// lock once.
func (s *SyncTriCubic) EvalAll(xs, ys, zs []float64, out ...[]float64) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tri.EvalAll(xs, ys, zs, out...)
}

// ResetData replaces the table of the wrapped TriCubic.
func (s *SyncTriCubic) ResetData(
	x1, x2, x3 []float64, vals [][][]float64,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tri.ResetData(x1, x2, x3, vals)
}

// Y2s returns a copy of the wrapped TriCubic's derivative cache.
func (s *SyncTriCubic) Y2s() [][][]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tri.Y2s()
}

// SetY2s loads the wrapped TriCubic's derivative cache.
func (s *SyncTriCubic) SetY2s(y2s [][][]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tri.SetY2s(y2s)
}

// Ref returns an unshared copy of the wrapped TriCubic.
func (s *SyncTriCubic) Ref() TriInterpolator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tri.Ref()
}
