package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gcfg.v1"
)

func TestExampleConfigs(t *testing.T) {
	interp := DefaultInterpolateWrapper()
	require.NoError(t, gcfg.ReadStringInto(interp, ExampleInterpolateFile))
	con := &interp.Interpolate
	assert.NoError(t, con.CheckInit())
	assert.Equal(t, "path/to/grid.txt", con.Input)
	assert.Equal(t, "path/to/points.txt", con.Points)
	assert.False(t, con.ValidOutput())
	assert.False(t, con.ValidCacheFile())
	assert.Equal(t, []int{0, 1, 2, 3}, con.Columns())
	assert.Equal(t, []int{0, 1, 2}, con.PointColumns())

	plot := DefaultPlotWrapper()
	require.NoError(t, gcfg.ReadStringInto(plot, ExamplePlotFile))
	assert.NoError(t, plot.Plot.CheckInit())
	assert.Equal(t, 0, plot.Plot.AxisIndex())
	assert.Equal(t, 200, plot.Plot.Samples)

	st := DefaultStatsWrapper()
	require.NoError(t, gcfg.ReadStringInto(st, ExampleStatsFile))
	assert.NoError(t, st.Stats.CheckInit())
	assert.Equal(t, 0, st.Stats.Column)
}

func TestInterpolateConfigCheckInit(t *testing.T) {
	tests := []struct {
		name, text string
		ok         bool
	}{
		{"minimal", "[Interpolate]\nInput = a\nPoints = b", true},
		{"no points", "[Interpolate]\nInput = a", false},
		{"no input", "[Interpolate]\nPoints = b", false},
		{"columns", "[Interpolate]\nInput = a\nPoints = b\n" +
			"X1Column = 3\nValueColumn = 0\nCacheFile = c", true},
		{"repeated column", "[Interpolate]\nInput = a\nPoints = b\n" +
			"X2Column = 0", false},
		{"negative point column", "[Interpolate]\nInput = a\nPoints = b\n" +
			"PointX3Column = -1", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			wrap := DefaultInterpolateWrapper()
			require.NoError(t, gcfg.ReadStringInto(wrap, test.text))
			err := wrap.Interpolate.CheckInit()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPlotConfigCheckInit(t *testing.T) {
	wrap := DefaultPlotWrapper()
	require.NoError(t, gcfg.ReadStringInto(wrap,
		"[Plot]\nInput = a\nAxis = x3\nX1 = 1.5\nX2 = -2\nMargin = 0.25"))
	con := &wrap.Plot
	require.NoError(t, con.CheckInit())
	assert.Equal(t, 2, con.AxisIndex())
	assert.Equal(t, [3]float64{1.5, -2, 0}, con.Point())

	con.Axis = "X4"
	assert.Error(t, con.CheckInit())
	con.Axis, con.Samples = "X2", 1
	assert.Error(t, con.CheckInit())
	con.Samples, con.Margin = 10, -1
	assert.Error(t, con.CheckInit())
}

func TestStatsConfigCheckInit(t *testing.T) {
	wrap := DefaultStatsWrapper()
	assert.Error(t, wrap.Stats.CheckInit())
	require.NoError(t, gcfg.ReadStringInto(wrap,
		"[Stats]\nInput = a\nColumn = 2\nOutput = b"))
	assert.NoError(t, wrap.Stats.CheckInit())
	assert.True(t, wrap.Stats.ValidOutput())

	wrap.Stats.Column = -1
	assert.Error(t, wrap.Stats.CheckInit())
}

func TestUnknownConfigVariable(t *testing.T) {
	wrap := DefaultStatsWrapper()
	err := gcfg.ReadStringInto(wrap, "[Stats]\nInput = a\nColumns = 2")
	assert.Error(t, err)
}
