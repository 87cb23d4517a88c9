package bonsai

import (
	"context"
	"sync"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
)

/*
Partition represents the split of a dataset on a feature at a threshold
into the samples below it and the samples at or above it. Both subsets
no longer have the feature available.
*/
type Partition struct {
	Feature   feature.Feature
	Threshold float64
	Gain      float64
	Below     dataset.Dataset
	Above     dataset.Dataset
}

/*
selectPartition takes a context, a dataset, a grid and a concurrency level
and returns the partition of the dataset on the available feature that
yields the highest information gain, or ErrNoSplitFound if no feature
yields a positive one. Features are searched on up to concurrency
goroutines, but results are compared in feature order so the first
feature reaching the highest gain is selected regardless of concurrency.
*/
func selectPartition(ctx context.Context, ds dataset.Dataset, grid ThresholdGrid, concurrency int) (*Partition, error) {
	entropy, err := ds.Entropy(ctx)
	if err != nil {
		return nil, err
	}
	features := ds.Features()
	splits := make([]split, len(features))
	errs := make([]error, len(features))
	if concurrency <= 1 {
		for i, f := range features {
			splits[i], errs[i] = bestSplit(ctx, ds, f, entropy, grid)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
	} else {
		var wg sync.WaitGroup
		slots := make(chan struct{}, concurrency)
		wg.Add(len(features))
		for i, f := range features {
			go func(i int, f feature.Feature) {
				defer wg.Done()
				slots <- struct{}{}
				defer func() { <-slots }()
				splits[i], errs[i] = bestSplit(ctx, ds, f, entropy, grid)
			}(i, f)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	selected := -1
	var best split
	for i, s := range splits {
		if s.gain > best.gain {
			best = s
			selected = i
		}
	}
	if selected < 0 {
		return nil, ErrNoSplitFound
	}
	f := features[selected]
	below, err := ds.SubsetWith(ctx, feature.Below(f, best.threshold))
	if err != nil {
		return nil, err
	}
	above, err := ds.SubsetWith(ctx, feature.AtOrAbove(f, best.threshold))
	if err != nil {
		return nil, err
	}
	return &Partition{
		Feature:   f,
		Threshold: best.threshold,
		Gain:      best.gain,
		Below:     below.Without(f),
		Above:     above.Without(f),
	}, nil
}
