package bonsai

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeGrid(t *testing.T) {
	candidates := RangeGrid{}.Candidates([]float64{9, 1, 5, 3})
	require.NotEmpty(t, candidates)
	assert.InDelta(t, 1.08, candidates[0], 1e-9)
	assert.True(t, sort.Float64sAreSorted(candidates))
	for _, c := range candidates {
		assert.True(t, c > 1 && c < 9, "candidate %v out of range", c)
	}
	assert.InDelta(t, 8.92, candidates[len(candidates)-1], 1e-9)
	// candidates are computed from min, not accumulated
	assert.InDelta(t, 1+50*0.08, candidates[49], 1e-12)
}

func TestRangeGridDegenerate(t *testing.T) {
	assert.Empty(t, RangeGrid{}.Candidates(nil))
	assert.Empty(t, RangeGrid{}.Candidates([]float64{4}))
	assert.Empty(t, RangeGrid{}.Candidates([]float64{4, 4, 4}))
	candidates := RangeGrid{}.Candidates([]float64{-10, 10})
	require.NotEmpty(t, candidates)
	assert.InDelta(t, -9.8, candidates[0], 1e-9)
}

func TestRatioGrid(t *testing.T) {
	candidates := RatioGrid{}.Candidates([]float64{2, 4, 3})
	require.Len(t, candidates, 99)
	assert.InDelta(t, 2.02, candidates[0], 1e-9)
	assert.InDelta(t, 2.5, candidates[24], 1e-9)
	assert.InDelta(t, 3.98, candidates[98], 1e-9)
}

func TestRatioGridNonPositiveMinimum(t *testing.T) {
	assert.Empty(t, RatioGrid{}.Candidates([]float64{0, 3}))
	assert.Empty(t, RatioGrid{}.Candidates([]float64{-1, 3}))
	assert.Empty(t, RatioGrid{}.Candidates([]float64{-3, -1}))
}

func TestRatioGridCoversWholeRange(t *testing.T) {
	// step is (2000/1000)/100 = 0.02, so the grid has ~50000 candidates
	candidates := RatioGrid{}.Candidates([]float64{1000, 1500, 2000})
	require.True(t, len(candidates) > 49000, "got %d candidates", len(candidates))
	assert.InDelta(t, 1000.02, candidates[0], 1e-9)
	last := candidates[len(candidates)-1]
	assert.True(t, last < 2000)
	assert.InDelta(t, 2000, last, 0.05)
}

func TestMidpointGrid(t *testing.T) {
	assert.Equal(t, []float64{1.5, 2.5}, MidpointGrid{}.Candidates([]float64{3, 1, 2, 2}))
	assert.Empty(t, MidpointGrid{}.Candidates([]float64{7, 7}))
	values := []float64{3, 1}
	MidpointGrid{}.Candidates(values)
	assert.Equal(t, []float64{3, 1}, values, "values are left untouched")
}

func TestGridByName(t *testing.T) {
	for name, expected := range map[string]ThresholdGrid{
		"":         RangeGrid{},
		"range":    RangeGrid{},
		"ratio":    RatioGrid{},
		"midpoint": MidpointGrid{},
	} {
		g, err := GridByName(name)
		require.NoError(t, err)
		assert.Equal(t, expected, g)
	}
	_, err := GridByName("log")
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "grid", ce.Field)
}
