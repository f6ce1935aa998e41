/*package eval evaluates a TriCubic at many points in parallel.
*/
package eval

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/tricubic/math/interpolate"
)

// Manager splits evaluations of a single TriCubic across a fixed number of
// workers. Each worker owns its own copy of the TriCubic, so no locking is
// needed.
type Manager struct {
	workers int
	engines []interpolate.TriInterpolator
}

// NewManager creates a Manager with the given number of workers. The
// derivative cache of tri is filled first, so that no worker repeats the
// solve.
func NewManager(tri *interpolate.TriCubic, workers int) (*Manager, error) {
	if workers <= 0 {
		return nil, fmt.Errorf(
			"Worker count must be positive, but is %d.", workers,
		)
	}

	tri.Y2s()
	man := &Manager{workers: workers}
	man.engines = make([]interpolate.TriInterpolator, workers)
	for i := range man.engines {
		man.engines[i] = tri.Ref()
	}
	return man, nil
}

// Workers returns the number of workers used by the Manager.
func (man *Manager) Workers() int { return man.workers }

// EvalAll evaluates the TriCubic at every point (x1s[i], x2s[i], x3s[i]). If
// an output array is given, the output is written to that array (the array is
// still returned as a convenience).
func (man *Manager) EvalAll(x1s, x2s, x3s []float64, out ...[]float64) []float64 {
	if len(x1s) != len(x2s) || len(x1s) != len(x3s) {
		panic(fmt.Sprintf(
			"Point arrays have lengths %d, %d, and %d.",
			len(x1s), len(x2s), len(x3s),
		))
	}
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(x1s))}
	}

	done := make(chan int, man.workers)
	for id := 0; id < man.workers; id++ {
		go man.chanEval(id, x1s, x2s, x3s, out[0], done)
	}
	for i := 0; i < man.workers; i++ {
		id := <-done
		log.Debugf("Worker %d/%d finished.", id+1, man.workers)
	}

	return out[0]
}

// chanEval is a worker function which evaluates every point whose index is
// congruent to the worker ID and then sends the ID to the done channel.
func (man *Manager) chanEval(
	worker int, x1s, x2s, x3s, out []float64, done chan<- int,
) {
	tri := man.engines[worker]
	for i := worker; i < len(out); i += man.workers {
		out[i] = tri.Eval(x1s[i], x2s[i], x3s[i])
	}
	done <- worker
}
