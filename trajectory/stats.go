package trajectory

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the collection's trajectories: counts, length
// statistics in meters, and summed duration.
type Summary struct {
	Count              int
	TotalFixes         int
	TotalLengthMeters  float64
	MeanLengthMeters   float64
	MedianLengthMeters float64
	TotalDuration      time.Duration
}

// Summary computes aggregate statistics over the collection.
func (c *Collection) Summary() Summary {
	s := Summary{Count: len(c.trajectories)}
	if s.Count == 0 {
		return s
	}
	lengths := make([]float64, 0, s.Count)
	for _, t := range c.trajectories {
		s.TotalFixes += len(t.fixes)
		lengths = append(lengths, t.length)
		if d, err := t.Duration(); err == nil {
			s.TotalDuration += d
		}
	}
	s.TotalLengthMeters = floats.Sum(lengths)
	s.MeanLengthMeters = stat.Mean(lengths, nil)
	sort.Float64s(lengths)
	s.MedianLengthMeters = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	return s
}

// Histogram is a binned distribution of a numeric fix attribute.
// Dividers has one more element than Counts; bin i spans
// [Dividers[i], Dividers[i+1]).
type Histogram struct {
	Dividers []float64
	Counts   []float64
}

// AttributeHistogram bins the named numeric attribute across every fix of
// every trajectory into the given number of equal-width bins. Non-numeric
// values are skipped; if no fix in the collection carries a numeric value
// for the attribute, it fails with ErrUnknownAttribute.
func (c *Collection) AttributeHistogram(attr string, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("%w: histogram needs at least 1 bin", ErrInvalidInput)
	}
	var values []float64
	for _, t := range c.trajectories {
		for _, f := range t.fixes {
			v, ok := f.Attr(attr)
			if !ok {
				continue
			}
			if x, ok := toFloat(v); ok && !math.IsNaN(x) {
				values = append(values, x)
			}
		}
	}
	if len(values) == 0 {
		return Histogram{}, fmt.Errorf("%w: no numeric values for %q", ErrUnknownAttribute, attr)
	}
	sort.Float64s(values)
	lo := values[0]
	hi := values[len(values)-1]
	// stat.Histogram requires every value strictly below the last divider.
	hi = math.Nextafter(hi, math.Inf(1))
	if hi <= lo {
		hi = lo + 1
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	counts := stat.Histogram(nil, dividers, values, nil)
	return Histogram{Dividers: dividers, Counts: counts}, nil
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
