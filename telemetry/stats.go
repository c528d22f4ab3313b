// Package telemetry provides field statistics, pass timing, and experiment output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldStats summarizes the sample distribution of one noise field.
type FieldStats struct {
	Field   string  `csv:"field"`
	Width   int     `csv:"width"`
	Height  int     `csv:"height"`
	Samples int     `csv:"samples"`
	Min     float64 `csv:"min"`
	Max     float64 `csv:"max"`
	AbsMax  float64 `csv:"abs_max"`
	Mean    float64 `csv:"mean"`
	StdDev  float64 `csv:"std_dev"`
	P10     float64 `csv:"p10"`
	P50     float64 `csv:"p50"`
	P90     float64 `csv:"p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats summarizes a width x height row-major field. Fields are
// float32 in the generators; float64 reference fields summarize the same way.
func ComputeFieldStats[T constraints.Float](name string, width, height int, data []T) FieldStats {
	s := FieldStats{Field: name, Width: width, Height: height, Samples: len(data)}
	if len(data) == 0 {
		return s
	}

	values := make([]float64, len(data))
	for i, v := range data {
		values[i] = float64(v)
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.AbsMax = math.Max(math.Abs(s.Min), math.Abs(s.Max))
	if len(values) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}

	sort.Float64s(values)
	s.P10 = Percentile(values, 0.10)
	s.P50 = Percentile(values, 0.50)
	s.P90 = Percentile(values, 0.90)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("field", s.Field),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("samples", s.Samples),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("abs_max", s.AbsMax),
		slog.Float64("mean", s.Mean),
		slog.Float64("std_dev", s.StdDev),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
	)
}

// LogStats logs the field stats using slog.
func (s FieldStats) LogStats() {
	slog.Info("stats",
		"field", s.Field,
		"size", s.Width*s.Height,
		"min", s.Min,
		"max", s.Max,
		"mean", s.Mean,
		"std_dev", s.StdDev,
	)
}
