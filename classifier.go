/*
Package bonsai grows binary decision trees that classify samples with
continuous features into integer labels.

A Classifier is built untrained with New, fitted on labelled rows with Fit
and then used to Predict the labels of new rows:

	c := bonsai.New(bonsai.WithDepthLimit(3))
	err := c.Fit(ctx, rows, labels)
	...
	predictions, err := c.Predict(ctx, newRows)

Trees are grown greedily: every decision node splits its samples on the
feature and threshold with the highest information gain, and every leaf
predicts the majority label of the training samples reaching it.
*/
package bonsai

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/feature"
	"github.com/pbanos/bonsai/tree"
	"github.com/sirupsen/logrus"
)

// Classifier is a decision tree classifier. It is untrained until a call
// to Fit or FitDataset succeeds. Its methods are safe for concurrent use.
type Classifier struct {
	depthLimit    int
	hasDepthLimit bool
	grid          ThresholdGrid
	concurrency   int
	logger        logrus.FieldLogger

	lock sync.RWMutex
	tree *tree.Tree
}

// Option configures a Classifier
type Option func(*Classifier)

// WithDepthLimit limits the number of decision levels of the grown trees.
// Limits below 1 make Fit fail with a *ConfigurationError.
func WithDepthLimit(n int) Option {
	return func(c *Classifier) {
		c.depthLimit = n
		c.hasDepthLimit = true
	}
}

// WithGrid sets the grid generating the candidate thresholds of splits
func WithGrid(g ThresholdGrid) Option {
	return func(c *Classifier) {
		c.grid = g
	}
}

// WithConcurrency sets how many features may be searched for their best
// split at the same time. It does not change the grown trees.
func WithConcurrency(n int) Option {
	return func(c *Classifier) {
		c.concurrency = n
	}
}

// WithLogger sets the logger the classifier reports its progress to
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Classifier) {
		c.logger = l
	}
}

// New returns an untrained Classifier configured with the given options.
// Without options trees are grown without depth limit on a RangeGrid
// searching one feature at a time.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		grid:        RangeGrid{},
		concurrency: 1,
		logger:      defaultLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) validate() error {
	if c.hasDepthLimit && c.depthLimit < 1 {
		return &ConfigurationError{Field: "depth_limit", Value: c.depthLimit, Reason: "must be at least 1"}
	}
	if c.concurrency < 1 {
		return &ConfigurationError{Field: "concurrency", Value: c.concurrency, Reason: "must be at least 1"}
	}
	if c.grid == nil {
		return &ConfigurationError{Field: "grid", Value: nil, Reason: "must be set"}
	}
	return nil
}

/*
Fit takes a context, a table of rows mapping feature names to values and the
labels of the rows, and trains the classifier on them. The features are the
sorted names of the first row, and every row must have values for exactly
those. On error the classifier keeps the tree it had before.
*/
func (c *Classifier) Fit(ctx context.Context, rows []map[string]float64, labels []int) error {
	if err := c.validate(); err != nil {
		return err
	}
	ds, err := newTrainingDataset(rows, labels)
	if err != nil {
		return err
	}
	return c.fit(ctx, ds)
}

// FitDataset takes a context and a dataset and trains the classifier on it
// using the features available on the dataset. On error the classifier
// keeps the tree it had before.
func (c *Classifier) FitDataset(ctx context.Context, ds dataset.Dataset) error {
	if err := c.validate(); err != nil {
		return err
	}
	count, err := ds.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		return &InputError{Reason: "empty training dataset"}
	}
	return c.fit(ctx, ds)
}

func (c *Classifier) fit(ctx context.Context, ds dataset.Dataset) error {
	remaining := unlimitedDepth
	if c.hasDepthLimit {
		remaining = c.depthLimit
	}
	g := &grower{grid: c.grid, concurrency: c.concurrency, logger: c.logger}
	root, err := g.grow(ctx, ds, remaining, 0)
	if err != nil {
		return err
	}
	t, err := tree.New(root)
	if err != nil {
		return err
	}
	decisions, leaves := t.Count()
	c.logger.WithFields(logrus.Fields{
		"decisions": decisions,
		"leaves":    leaves,
		"depth":     t.Depth(),
	}).Debug("tree grown")
	c.lock.Lock()
	c.tree = t
	c.lock.Unlock()
	return nil
}

func newTrainingDataset(rows []map[string]float64, labels []int) (dataset.Dataset, error) {
	if len(rows) == 0 {
		return nil, &InputError{Reason: "empty training table"}
	}
	if len(rows) != len(labels) {
		return nil, &InputError{Reason: fmt.Sprintf("%d rows but %d labels", len(rows), len(labels))}
	}
	names := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		names = append(names, name)
	}
	sort.Strings(names)
	features := feature.NewContinuousFeatures(names)
	samples := make([]dataset.Sample, len(rows))
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, &InputError{Reason: fmt.Sprintf("row %d has %d features instead of %d", i, len(row), len(names))}
		}
		for _, f := range features {
			v, ok := row[f.Name()]
			if !ok {
				return nil, &InputError{Reason: fmt.Sprintf("row %d", i), Err: &feature.MissingFeatureError{Feature: f.Name()}}
			}
			if err := f.Valid(v); err != nil {
				return nil, &InputError{Reason: fmt.Sprintf("row %d", i), Err: err}
			}
		}
		samples[i] = dataset.NewSample(row, labels[i])
	}
	return dataset.New(features, samples), nil
}

/*
Predict takes a context and a table of rows and returns the predicted label
of every row in the same order. It returns ErrUntrained if the classifier
has not been trained. If any row cannot be classified no labels are returned
and the error is a *RecordError with the index of the first such row.
*/
func (c *Classifier) Predict(ctx context.Context, rows []map[string]float64) ([]int, error) {
	t := c.Tree()
	if t == nil {
		return nil, ErrUntrained
	}
	result := make([]int, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l, err := t.Classify(feature.Values(row))
		if err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		result[i] = l
	}
	return result, nil
}

// PredictSample returns the predicted label for the given sample or
// ErrUntrained if the classifier has not been trained
func (c *Classifier) PredictSample(s feature.Sample) (int, error) {
	t := c.Tree()
	if t == nil {
		return 0, ErrUntrained
	}
	return t.Classify(s)
}

/*
Score takes a context, a table of rows and their labels and returns the
fraction of rows whose predicted label matches theirs.
*/
func (c *Classifier) Score(ctx context.Context, rows []map[string]float64, labels []int) (float64, error) {
	if len(rows) != len(labels) {
		return 0, &InputError{Reason: fmt.Sprintf("%d rows but %d labels", len(rows), len(labels))}
	}
	predictions, err := c.Predict(ctx, rows)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, &InputError{Reason: "empty test table"}
	}
	var hits int
	for i, p := range predictions {
		if p == labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(rows)), nil
}

// Tree returns the trained tree of the classifier or nil if it is
// untrained. The tree is shared with the classifier and every Predict
// call: callers may read its nodes through Root but must not modify
// them.
func (c *Classifier) Tree() *tree.Tree {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.tree
}

// Trained returns whether the classifier has a trained tree
func (c *Classifier) Trained() bool {
	return c.Tree() != nil
}

// Describe returns a human readable rendering of the trained tree, meant
// for debugging
func (c *Classifier) Describe() string {
	return c.Tree().String()
}

func (c *Classifier) String() string {
	return c.Describe()
}

// Save takes a context, a store and an id and saves the trained tree
// of the classifier on the store under the id
func (c *Classifier) Save(ctx context.Context, store tree.Store, id string) error {
	t := c.Tree()
	if t == nil {
		return ErrUntrained
	}
	return store.Save(ctx, id, t)
}

// Load takes a context, a store, an id and options and returns a
// trained classifier with the tree stored under the id
func Load(ctx context.Context, store tree.Store, id string, opts ...Option) (*Classifier, error) {
	t, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	c := New(opts...)
	c.tree = t
	return c, nil
}
