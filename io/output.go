package io

import (
	"bufio"
	"fmt"
	"io"

	"github.com/phil-mansfield/tricubic/math/stats"
)

// WriteValues writes one "x1 x2 x3 value" row per evaluated point.
func WriteValues(wr io.Writer, x1s, x2s, x3s, vals []float64) error {
	if len(x1s) != len(vals) || len(x2s) != len(vals) || len(x3s) != len(vals) {
		panic(fmt.Sprintf(
			"Lengths of output columns are %d, %d, %d, and %d.",
			len(x1s), len(x2s), len(x3s), len(vals),
		))
	}

	buf := bufio.NewWriter(wr)
	fmt.Fprintln(buf, "# x1 x2 x3 value")
	for i := range vals {
		fmt.Fprintf(
			buf, "%.10g %.10g %.10g %.10g\n", x1s[i], x2s[i], x3s[i], vals[i],
		)
	}
	return buf.Flush()
}

// WriteStats writes the statistics held by an Accumulator as "name value"
// rows.
func WriteStats(wr io.Writer, acc *stats.Accumulator) error {
	buf := bufio.NewWriter(wr)
	rows := []struct {
		name string
		val  float64
	}{
		{"mean", acc.Mean()},
		{"variance", acc.Variance()},
		{"stddev", acc.StdDev()},
		{"skewness", acc.Skewness()},
		{"kurtosis", acc.Kurtosis()},
		{"min", acc.Min()},
		{"max", acc.Max()},
	}

	fmt.Fprintf(buf, "%-8s %d\n", "count", acc.Count())
	for _, row := range rows {
		fmt.Fprintf(buf, "%-8s %.10g\n", row.name, row.val)
	}
	return buf.Flush()
}
