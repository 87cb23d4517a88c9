package bonsai

import (
	"context"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
)

// gains at or below minimumGain are rounding noise, not a split
const minimumGain = 1e-12

// split is the result of searching the best threshold for a feature
type split struct {
	threshold float64
	gain      float64
}

/*
bestSplit takes a context, a dataset, one of its features, the entropy of the
dataset and a grid and returns the candidate threshold of the grid that splits
the dataset with the highest information gain. Samples with a value below the
threshold go on one side, the rest on the other. Only gains strictly greater
than the best so far replace it, so the lowest threshold wins ties and a
feature without any positive gain yields a zero split. Gains at or below
minimumGain count as no gain, so a feature whose only positive gains are
that small yields a zero split too and is never selected.
*/
func bestSplit(ctx context.Context, ds dataset.Dataset, f feature.Feature, entropy float64, grid ThresholdGrid) (split, error) {
	values, err := ds.FeatureValues(ctx, f)
	if err != nil {
		return split{}, err
	}
	samples, err := ds.Samples(ctx)
	if err != nil {
		return split{}, err
	}
	labels := make([]int, len(samples))
	for i, s := range samples {
		labels[i] = s.Label()
	}
	total := float64(len(values))
	var best split
	for _, t := range grid.Candidates(values) {
		if err := ctx.Err(); err != nil {
			return split{}, err
		}
		below, above := make(map[int]int), make(map[int]int)
		var belowCount, aboveCount int
		for i, v := range values {
			if v < t {
				below[labels[i]]++
				belowCount++
			} else {
				above[labels[i]]++
				aboveCount++
			}
		}
		if belowCount == 0 || aboveCount == 0 {
			continue
		}
		gain := entropy -
			float64(belowCount)/total*dataset.EntropyOf(below) -
			float64(aboveCount)/total*dataset.EntropyOf(above)
		if gain > minimumGain && gain > best.gain {
			best = split{threshold: t, gain: gain}
		}
	}
	return best, nil
}
