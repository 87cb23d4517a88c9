package bonsai

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ThresholdGrid generates the candidate thresholds tried when splitting
// a dataset on a feature. It receives the feature values of the dataset
// and returns the candidates in increasing order.
type ThresholdGrid interface {
	Candidates(values []float64) []float64
}

const gridSteps = 100

// RangeGrid tries a hundred evenly spaced thresholds over the range of
// the values, (max-min)/100 apart. It is the default grid.
type RangeGrid struct{}

// Candidates returns min + k*(max-min)/100 for every k >= 1 whose
// candidate is below max
func (RangeGrid) Candidates(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	min, max := floats.Min(values), floats.Max(values)
	return steps(min, max, (max-min)/gridSteps)
}

// RatioGrid tries thresholds (max/min)/100 apart starting from the
// minimum value. The step depends on the scale of the values and
// makes no sense for non-positive minimums, for which no candidates
// are returned. It is kept to reproduce trees grown by earlier
// versions, so the whole range is always covered: values far from
// zero with a narrow range yield a very long list of candidates.
type RatioGrid struct{}

// Candidates returns min + k*(max/min)/100 for every k >= 1 whose
// candidate is below max
func (RatioGrid) Candidates(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	min, max := floats.Min(values), floats.Max(values)
	return steps(min, max, (max/min)/gridSteps)
}

// MidpointGrid tries the midpoints between every pair of consecutive
// distinct values.
type MidpointGrid struct{}

// Candidates returns the midpoints between consecutive distinct values
func (MidpointGrid) Candidates(values []float64) []float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	var candidates []float64
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			continue
		}
		candidates = append(candidates, (sorted[i-1]+sorted[i])/2)
	}
	return candidates
}

func steps(min, max, step float64) []float64 {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	var candidates []float64
	for k := 1; ; k++ {
		t := min + float64(k)*step
		if t >= max {
			break
		}
		candidates = append(candidates, t)
	}
	return candidates
}

// Grid names accepted by GridByName and the grid config setting
const (
	GridRange    = "range"
	GridRatio    = "ratio"
	GridMidpoint = "midpoint"
)

// GridByName returns the ThresholdGrid with the given name or a
// *ConfigurationError if there is none
func GridByName(name string) (ThresholdGrid, error) {
	switch name {
	case GridRange, "":
		return RangeGrid{}, nil
	case GridRatio:
		return RatioGrid{}, nil
	case GridMidpoint:
		return MidpointGrid{}, nil
	}
	return nil, &ConfigurationError{
		Field:  "grid",
		Value:  name,
		Reason: fmt.Sprintf("must be one of %s, %s or %s", GridRange, GridRatio, GridMidpoint),
	}
}
