package io

import (
	"fmt"
	"strings"
)

const (
	ExampleInterpolateFile = `[Interpolate]

#######################
# Required Parameters #
#######################

# Table containing the tabulated grid. Every row holds one grid point. The
# rows must cover the full tensor product of the x1, x2, and x3 coordinates,
# but may come in any order. Each axis needs at least three distinct values.
Input = path/to/grid.txt

# Table containing the points to evaluate the grid at, one per row.
Points = path/to/points.txt

#######################
# Optional Parameters #
#######################

# File that results will be written to as rows of "x1 x2 x3 value". Results
# are written to stdout if this isn't set.
# Output = path/to/output.txt

# Columns of the grid table holding x1, x2, x3, and the tabulated value.
# The defaults are 0, 1, 2, and 3.
# X1Column = 0
# X2Column = 1
# X3Column = 2
# ValueColumn = 3

# Columns of the points table holding x1, x2, and x3. The defaults are 0, 1,
# and 2.
# PointX1Column = 0
# PointX2Column = 1
# PointX3Column = 2

# Binary file holding the second derivatives of the grid. If the file exists
# and matches the grid's shape, it is loaded instead of solving for them.
# Otherwise it is written after the solve. Only reuse a cache file with the
# grid that produced it.
# CacheFile = path/to/grid.y2s

# Output files which are useful for profiling and debugging.
# LogFile = log.out
# ProfileFile = prof.out`

	ExamplePlotFile = `[Plot]

#######################
# Required Parameters #
#######################

# Table containing the tabulated grid, in the same format used by
# [Interpolate].
Input = path/to/grid.txt

# The axis that the plotted cut runs along. Must be one of [ X1 | X2 | X3 ].
Axis = X1

# Coordinates of the cut along the two other axes. The value for the plotted
# axis is ignored.
X1 = 0
X2 = 0
X3 = 0

#######################
# Optional Parameters #
#######################

# File that the figure is saved to. The figure is shown in a window if this
# isn't set.
# Output = cut.png

# Number of points evaluated along the cut. Default is 200.
# Samples = 200

# Fraction of the axis range that the cut extends past each end of the
# table. Points past the end are extrapolated. Default is 0.
# Margin = 0.1

# Title = My Cut

# X1Column = 0
# X2Column = 1
# X3Column = 2
# ValueColumn = 3

# Output files which are useful for profiling and debugging.
# LogFile = log.out
# ProfileFile = prof.out`

	ExampleStatsFile = `[Stats]

#######################
# Required Parameters #
#######################

# Table containing the samples.
Input = path/to/samples.txt

#######################
# Optional Parameters #
#######################

# Column of the table holding the samples. Default is 0.
# Column = 0

# File that the statistics will be written to. They are written to stdout if
# this isn't set.
# Output = stats.txt

# Output files which are useful for profiling and debugging.
# LogFile = log.out
# ProfileFile = prof.out`
)

// SharedConfig contains the variables used by every mode.
type SharedConfig struct {
	// Required
	Input string
	// Optional
	Output, LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// GridColumns gives the columns of a grid table which hold each coordinate
// and the tabulated value.
type GridColumns struct {
	X1Column, X2Column, X3Column, ValueColumn int
}

func defaultGridColumns() GridColumns {
	return GridColumns{0, 1, 2, 3}
}

// Columns returns the column indices in the order x1, x2, x3, value.
func (cols *GridColumns) Columns() []int {
	return []int{cols.X1Column, cols.X2Column, cols.X3Column, cols.ValueColumn}
}

func (cols *GridColumns) ValidColumns() bool {
	return validColumns(cols.Columns())
}

// validColumns returns true if every index is non-negative and distinct.
func validColumns(idxs []int) bool {
	for i := range idxs {
		if idxs[i] < 0 {
			return false
		}
		for j := 0; j < i; j++ {
			if idxs[i] == idxs[j] {
				return false
			}
		}
	}
	return true
}

type InterpolateConfig struct {
	SharedConfig
	GridColumns

	// Required
	Points string

	// Optional
	PointX1Column, PointX2Column, PointX3Column int
	CacheFile string
}

type InterpolateWrapper struct {
	Interpolate InterpolateConfig
}

func DefaultInterpolateWrapper() *InterpolateWrapper {
	con := InterpolateConfig{}
	con.GridColumns = defaultGridColumns()
	con.PointX1Column, con.PointX2Column, con.PointX3Column = 0, 1, 2
	return &InterpolateWrapper{con}
}

func (con *InterpolateConfig) ValidPoints() bool {
	return con.Points != ""
}
func (con *InterpolateConfig) ValidPointColumns() bool {
	return validColumns(con.PointColumns())
}
func (con *InterpolateConfig) ValidCacheFile() bool {
	return con.CacheFile != ""
}

// PointColumns returns the columns of the points table in the order x1, x2,
// x3.
func (con *InterpolateConfig) PointColumns() []int {
	return []int{con.PointX1Column, con.PointX2Column, con.PointX3Column}
}

// CheckInit returns an error describing the first invalid required variable.
func (con *InterpolateConfig) CheckInit() error {
	if !con.ValidInput() {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if !con.ValidPoints() {
		return fmt.Errorf("Invalid/non-existent 'Points' value.")
	} else if !con.ValidColumns() {
		return fmt.Errorf(
			"Grid columns %v must be non-negative and distinct.",
			con.Columns(),
		)
	} else if !con.ValidPointColumns() {
		return fmt.Errorf(
			"Point columns %v must be non-negative and distinct.",
			con.PointColumns(),
		)
	}
	return nil
}

type PlotConfig struct {
	SharedConfig
	GridColumns

	// Required
	Axis       string
	X1, X2, X3 float64

	// Optional
	Samples int
	Margin  float64
	Title   string
}

type PlotWrapper struct {
	Plot PlotConfig
}

func DefaultPlotWrapper() *PlotWrapper {
	con := PlotConfig{}
	con.GridColumns = defaultGridColumns()
	con.Samples = 200
	return &PlotWrapper{con}
}

// AxisIndex returns the index of the plotted axis, or -1 if Axis isn't
// recognized.
func (con *PlotConfig) AxisIndex() int {
	switch strings.Trim(strings.ToUpper(con.Axis), " ") {
	case "X1":
		return 0
	case "X2":
		return 1
	case "X3":
		return 2
	}
	return -1
}

func (con *PlotConfig) ValidAxis() bool {
	return con.AxisIndex() >= 0
}
func (con *PlotConfig) ValidSamples() bool {
	return con.Samples >= 2
}
func (con *PlotConfig) ValidMargin() bool {
	return con.Margin >= 0
}

// Point returns the fixed coordinates of the cut.
func (con *PlotConfig) Point() [3]float64 {
	return [3]float64{con.X1, con.X2, con.X3}
}

// CheckInit returns an error describing the first invalid variable.
func (con *PlotConfig) CheckInit() error {
	if !con.ValidInput() {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if !con.ValidAxis() {
		return fmt.Errorf(
			"Axis must be one of [X1 | X2 | X3]. '%s' is not recognized.",
			con.Axis,
		)
	} else if !con.ValidSamples() {
		return fmt.Errorf(
			"Samples must be at least 2, but is %d.", con.Samples,
		)
	} else if !con.ValidMargin() {
		return fmt.Errorf("Margin must be non-negative, but is %g.", con.Margin)
	} else if !con.ValidColumns() {
		return fmt.Errorf(
			"Grid columns %v must be non-negative and distinct.",
			con.Columns(),
		)
	}
	return nil
}

type StatsConfig struct {
	SharedConfig

	// Optional
	Column int
}

type StatsWrapper struct {
	Stats StatsConfig
}

func DefaultStatsWrapper() *StatsWrapper {
	return &StatsWrapper{StatsConfig{}}
}

func (con *StatsConfig) ValidColumn() bool {
	return con.Column >= 0
}

// CheckInit returns an error describing the first invalid variable.
func (con *StatsConfig) CheckInit() error {
	if !con.ValidInput() {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if !con.ValidColumn() {
		return fmt.Errorf("Column must be non-negative, but is %d.", con.Column)
	}
	return nil
}
