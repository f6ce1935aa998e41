package main

import (
	"fmt"
	goio "io"
	"os"

	plt "github.com/phil-mansfield/pyplot"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/tricubic/eval"
	"github.com/phil-mansfield/tricubic/io"
	"github.com/phil-mansfield/tricubic/math/interpolate"
	"github.com/phil-mansfield/tricubic/math/stats"
)

var axisNames = []string{"x1", "x2", "x3"}

// interpolateMain evaluates the grid in con.Input at every point in
// con.Points.
func interpolateMain(con *io.InterpolateConfig, threads int) error {
	grid, err := io.ReadGrid(con.Input, con.GridColumns)
	if err != nil {
		return err
	}
	tri, err := grid.TriCubic()
	if err != nil {
		return err
	}

	loaded := con.ValidCacheFile() && loadCache(tri, con.CacheFile)

	x1s, x2s, x3s, err := io.ReadPoints(con.Points, con.PointColumns())
	if err != nil {
		return err
	}
	warnOutside(grid, x1s, x2s, x3s)

	man, err := eval.NewManager(tri, threads)
	if err != nil {
		return err
	}
	vals := man.EvalAll(x1s, x2s, x3s)
	log.Infof("Evaluated %d points with %d workers.", len(vals), threads)

	if con.ValidCacheFile() && !loaded {
		if err := io.WriteCache(con.CacheFile, tri.Y2s()); err != nil {
			return err
		}
	}

	return withOutput(con.Output, func(wr goio.Writer) error {
		return io.WriteValues(wr, x1s, x2s, x3s, vals)
	})
}

// loadCache tries to load a derivative cache file into tri and returns true
// if it succeeded.
func loadCache(tri *interpolate.TriCubic, fname string) bool {
	if _, err := os.Stat(fname); err != nil {
		log.Debugf("No cache file at %s.", fname)
		return false
	}

	n, m, l := tri.Dims()
	y2s, err := io.ReadCache(fname, n, m, l)
	if err == nil {
		err = tri.SetY2s(y2s)
	}
	if err != nil {
		log.Warnf("Ignoring cache file: %s", err.Error())
		return false
	}
	return true
}

// warnOutside logs a warning if any points lie outside the grid. They are
// still evaluated.
func warnOutside(grid *io.Grid, x1s, x2s, x3s []float64) {
	outside := 0
	for i := range x1s {
		if !grid.Contains(x1s[i], x2s[i], x3s[i]) {
			outside++
		}
	}
	if outside > 0 {
		log.Warnf(
			"%d of %d points lie outside the tabulated grid and will be "+
				"extrapolated.", outside, len(x1s),
		)
	}
}

// withOutput calls write on the named file, or on stdout if fname is empty.
func withOutput(fname string, write func(goio.Writer) error) error {
	if fname == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Cut is a 1D cut through an interpolated grid.
type Cut struct {
	Axis         int
	Xs, Vals     []float64
	Nodes        []float64
	NodeVals     []float64
	Extrapolated bool
}

// NewCut evaluates tri along the axis given by con, holding the other
// coordinates fixed.
func NewCut(
	grid *io.Grid, tri interpolate.TriInterpolator, con *io.PlotConfig,
) *Cut {
	axis := con.AxisIndex()
	nodes := grid.Axis(axis)
	lo, hi := nodes[0], nodes[len(nodes)-1]
	margin := con.Margin * (hi - lo)

	cut := &Cut{
		Axis:     axis,
		Xs:       floats.Span(make([]float64, con.Samples), lo-margin, hi+margin),
		Vals:     make([]float64, con.Samples),
		Nodes:    nodes,
		NodeVals: make([]float64, len(nodes)),
	}

	p := con.Point()
	for i, x := range cut.Xs {
		p[axis] = x
		cut.Vals[i] = tri.Eval(p[0], p[1], p[2])
	}
	for i, x := range nodes {
		p[axis] = x
		cut.NodeVals[i] = tri.Eval(p[0], p[1], p[2])
	}

	p[axis] = lo
	cut.Extrapolated = margin > 0 || !grid.Contains(p[0], p[1], p[2])
	return cut
}

// plotMain plots a cut through the grid in con.Input.
func plotMain(con *io.PlotConfig) error {
	grid, err := io.ReadGrid(con.Input, con.GridColumns)
	if err != nil {
		return err
	}
	tri, err := grid.TriCubic()
	if err != nil {
		return err
	}

	cut := NewCut(grid, tri, con)
	if cut.Extrapolated {
		log.Warnf("Part of the cut lies outside the grid and is extrapolated.")
	}

	plt.Figure(plt.FigSize(8, 8))
	plt.Plot(cut.Xs, cut.Vals, "k", plt.LW(2))
	plt.Plot(cut.Nodes, cut.NodeVals, "ow")
	plt.XLim(cut.Xs[0], cut.Xs[len(cut.Xs)-1])
	plt.XLabel(fmt.Sprintf("$%s$", axisNames[cut.Axis]), plt.FontSize(16))
	plt.YLabel("$f$", plt.FontSize(16))
	if con.Title != "" {
		plt.Title(con.Title)
	}
	plt.Grid(plt.Axis("y"))

	if con.ValidOutput() {
		plt.SaveFig(con.Output)
		plt.Execute()
		log.Infof("Saved plot to %s.", con.Output)
	} else {
		plt.Show()
	}
	return nil
}

// statsMain prints the statistics of one column of con.Input.
func statsMain(con *io.StatsConfig) error {
	xs, err := io.ReadColumn(con.Input, con.Column)
	if err != nil {
		return err
	}

	acc := &stats.Accumulator{}
	acc.AddAll(xs)

	return withOutput(con.Output, func(wr goio.Writer) error {
		return io.WriteStats(wr, acc)
	})
}
