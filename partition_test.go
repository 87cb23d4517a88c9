package bonsai

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepDataset() dataset.Dataset {
	var samples []dataset.Sample
	for _, a := range []float64{1, 2, 3, 4, 4.5, 5, 5.5, 6, 7, 9} {
		label := 0
		if a >= 5 {
			label = 1
		}
		samples = append(samples, dataset.NewSample(map[string]float64{"A": a, "B": 1}, label))
	}
	return dataset.New(feature.NewContinuousFeatures([]string{"A", "B"}), samples)
}

func randomDataset(seed int64, n int, names []string) dataset.Dataset {
	r := rand.New(rand.NewSource(seed))
	samples := make([]dataset.Sample, n)
	for i := range samples {
		values := make(map[string]float64, len(names))
		for _, name := range names {
			values[name] = r.Float64() * 10
		}
		label := 0
		if values[names[0]]+values[names[1]] > 10 {
			label = 1
		}
		if r.Intn(10) == 0 {
			label = 2
		}
		samples[i] = dataset.NewSample(values, label)
	}
	return dataset.New(feature.NewContinuousFeatures(names), samples)
}

func TestBestSplit(t *testing.T) {
	ctx := context.Background()
	ds := stepDataset()
	entropy, err := ds.Entropy(ctx)
	require.NoError(t, err)
	s, err := bestSplit(ctx, ds, feature.NewContinuousFeature("A"), entropy, RangeGrid{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.gain, 1e-9)
	assert.True(t, s.threshold > 4.5 && s.threshold <= 5, "threshold %v", s.threshold)
}

func TestBestSplitConstantFeature(t *testing.T) {
	ctx := context.Background()
	ds := stepDataset()
	entropy, err := ds.Entropy(ctx)
	require.NoError(t, err)
	s, err := bestSplit(ctx, ds, feature.NewContinuousFeature("B"), entropy, RangeGrid{})
	require.NoError(t, err)
	assert.Equal(t, split{}, s)
}

func TestBestSplitGainNonNegative(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 5; seed++ {
		ds := randomDataset(seed, 60, []string{"A", "B", "C"})
		entropy, err := ds.Entropy(ctx)
		require.NoError(t, err)
		for _, f := range ds.Features() {
			for _, grid := range []ThresholdGrid{RangeGrid{}, RatioGrid{}, MidpointGrid{}} {
				s, err := bestSplit(ctx, ds, f, entropy, grid)
				require.NoError(t, err)
				assert.True(t, s.gain >= 0)
				assert.True(t, s.gain <= entropy+1e-9)
			}
		}
	}
}

func TestBestSplitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bestSplit(ctx, stepDataset(), feature.NewContinuousFeature("A"), 1, RangeGrid{})
	assert.Equal(t, context.Canceled, err)
}

func TestSelectPartition(t *testing.T) {
	ctx := context.Background()
	p, err := selectPartition(ctx, stepDataset(), RangeGrid{}, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Feature.Name())
	assert.InDelta(t, 1.0, p.Gain, 1e-9)
	assert.Equal(t, []string{"B"}, feature.Names(p.Below.Features()))
	assert.Equal(t, []string{"B"}, feature.Names(p.Above.Features()))
	below, err := p.Below.CountLabels(ctx)
	require.NoError(t, err)
	above, err := p.Above.CountLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 5}, below)
	assert.Equal(t, map[int]int{1: 5}, above)
}

func TestSelectPartitionTieGoesToFirstFeature(t *testing.T) {
	var samples []dataset.Sample
	for i, v := range []float64{1, 2, 3, 4} {
		samples = append(samples, dataset.NewSample(map[string]float64{"X": v, "Y": v}, i/2))
	}
	ds := dataset.New(feature.NewContinuousFeatures([]string{"Y", "X"}), samples)
	for _, concurrency := range []int{1, 2} {
		p, err := selectPartition(context.Background(), ds, MidpointGrid{}, concurrency)
		require.NoError(t, err)
		assert.Equal(t, "Y", p.Feature.Name())
		assert.Equal(t, 2.5, p.Threshold)
	}
}

func TestSelectPartitionNoSplit(t *testing.T) {
	pure := dataset.New(feature.NewContinuousFeatures([]string{"A"}), []dataset.Sample{
		dataset.NewSample(map[string]float64{"A": 1}, 4),
		dataset.NewSample(map[string]float64{"A": 2}, 4),
	})
	_, err := selectPartition(context.Background(), pure, RangeGrid{}, 1)
	assert.Equal(t, ErrNoSplitFound, err)

	noFeatures := pure.Without(feature.NewContinuousFeature("A"))
	_, err = selectPartition(context.Background(), noFeatures, RangeGrid{}, 1)
	assert.Equal(t, ErrNoSplitFound, err)
}

func TestSelectPartitionConcurrencyMatchesSequential(t *testing.T) {
	ctx := context.Background()
	ds := randomDataset(42, 150, []string{"A", "B", "C", "D", "E"})
	sequential, err := selectPartition(ctx, ds, RangeGrid{}, 1)
	require.NoError(t, err)
	for _, concurrency := range []int{2, 3, 8} {
		concurrent, err := selectPartition(ctx, ds, RangeGrid{}, concurrency)
		require.NoError(t, err)
		assert.Equal(t, sequential.Feature.Name(), concurrent.Feature.Name())
		assert.Equal(t, sequential.Threshold, concurrent.Threshold)
		assert.Equal(t, sequential.Gain, concurrent.Gain)
	}
}
