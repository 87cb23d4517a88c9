package bonsai

import (
	"context"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/tree"
	"github.com/sirupsen/logrus"
)

// unlimitedDepth is the remaining depth of trees grown without limit
const unlimitedDepth = -1

// grower holds what is needed to grow a tree from a dataset
type grower struct {
	grid        ThresholdGrid
	concurrency int
	logger      logrus.FieldLogger
}

/*
grow takes a context, a dataset, the number of decision levels that may
still be added below (unlimitedDepth for no limit) and the depth of the node
to grow, and returns the root of a subtree classifying the dataset.

The dataset is split on the partition with the highest information gain.
Each side becomes a leaf labelled with its majority label if it is pure,
has no features left or no more levels may be added, and is grown
recursively otherwise. A dataset no feature can split with a positive
gain becomes a leaf itself.
*/
func (g *grower) grow(ctx context.Context, ds dataset.Dataset, remaining, depth int) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count, err := ds.Count(ctx)
	if err != nil {
		return nil, err
	}
	p, err := selectPartition(ctx, ds, g.grid, g.concurrency)
	if err == ErrNoSplitFound {
		g.logger.WithFields(logrus.Fields{"samples": count, "depth": depth}).Debug("no split found, growing leaf")
		return g.leaf(ctx, ds, count)
	}
	if err != nil {
		return nil, err
	}
	g.logger.WithFields(logrus.Fields{
		"feature":   p.Feature.Name(),
		"threshold": p.Threshold,
		"gain":      p.Gain,
		"samples":   count,
		"depth":     depth,
	}).Debug("splitting dataset")
	below, err := g.child(ctx, p.Below, remaining, depth+1)
	if err != nil {
		return nil, err
	}
	above, err := g.child(ctx, p.Above, remaining, depth+1)
	if err != nil {
		return nil, err
	}
	return tree.NewDecision(p.Feature.Name(), p.Threshold, p.Gain, count, below, above), nil
}

func (g *grower) child(ctx context.Context, ds dataset.Dataset, remaining, depth int) (*tree.Node, error) {
	count, err := ds.Count(ctx)
	if err != nil {
		return nil, err
	}
	entropy, err := ds.Entropy(ctx)
	if err != nil {
		return nil, err
	}
	if entropy == 0 || len(ds.Features()) == 0 || remaining == 1 {
		return g.leaf(ctx, ds, count)
	}
	if remaining != unlimitedDepth {
		remaining--
	}
	return g.grow(ctx, ds, remaining, depth)
}

func (g *grower) leaf(ctx context.Context, ds dataset.Dataset, count int) (*tree.Node, error) {
	label, err := ds.MajorityLabel(ctx)
	if err != nil {
		return nil, err
	}
	return tree.NewLeaf(label, count), nil
}
