package tree

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/bonsai/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A < 5 ? (B < 2 ? 0 : 2) : 1
func testTree(t *testing.T) *Tree {
	root := NewDecision("A", 5, 0.9, 10,
		NewDecision("B", 2, 0.5, 6, NewLeaf(0, 3), NewLeaf(2, 3)),
		NewLeaf(1, 4),
	)
	tr, err := New(root)
	require.NoError(t, err)
	return tr
}

func TestClassify(t *testing.T) {
	tr := testTree(t)
	cases := []struct {
		sample feature.Values
		label  int
	}{
		{feature.Values{"A": 1, "B": 1}, 0},
		{feature.Values{"A": 4.999, "B": 2}, 2},
		{feature.Values{"A": 5, "B": 0}, 1},
		{feature.Values{"A": 8}, 1},
	}
	for _, c := range cases {
		l, err := tr.Classify(c.sample)
		require.NoError(t, err)
		assert.Equal(t, c.label, l, "classifying %v", c.sample)
		// always the same answer
		l2, err := tr.Classify(c.sample)
		require.NoError(t, err)
		assert.Equal(t, l, l2)
	}
}

func TestClassifyMissingFeature(t *testing.T) {
	tr := testTree(t)
	_, err := tr.Classify(feature.Values{"A": 1})
	var mfe *feature.MissingFeatureError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "B", mfe.Feature)
}

func TestClassifyNilTree(t *testing.T) {
	var tr *Tree
	_, err := tr.Classify(feature.Values{})
	assert.Equal(t, ErrNilTree, err)
}

func TestNewRejectsInvalidTrees(t *testing.T) {
	_, err := New(nil)
	assert.Equal(t, ErrNilTree, err)

	_, err = New(&Node{Kind: Decision, Feature: "A", Below: NewLeaf(0, 1)})
	assert.Error(t, err)

	_, err = New(NewDecision("", 1, 0, 2, NewLeaf(0, 1), NewLeaf(1, 1)))
	assert.Error(t, err)

	repeated := NewDecision("A", 1, 0, 3, NewDecision("A", 0, 0, 2, NewLeaf(0, 1), NewLeaf(1, 1)), NewLeaf(1, 1))
	_, err = New(repeated)
	assert.Error(t, err)

	_, err = New(&Node{Kind: Kind(7)})
	assert.Error(t, err)
}

func TestSingleLeafTree(t *testing.T) {
	tr, err := New(NewLeaf(3, 7))
	require.NoError(t, err)
	l, err := tr.Classify(feature.Values{})
	require.NoError(t, err)
	assert.Equal(t, 3, l)
	assert.Equal(t, 0, tr.Depth())
	d, lv := tr.Count()
	assert.Equal(t, 0, d)
	assert.Equal(t, 1, lv)
}

func TestDepthCountFeatures(t *testing.T) {
	tr := testTree(t)
	assert.Equal(t, 2, tr.Depth())
	d, l := tr.Count()
	assert.Equal(t, 2, d)
	assert.Equal(t, 3, l)
	assert.Equal(t, []string{"A", "B"}, tr.Features())
}

func TestTraverse(t *testing.T) {
	tr := testTree(t)
	var topdown, bottomup []string
	name := func(n *Node) string {
		if n.IsLeaf() {
			return string(rune('0' + n.Label))
		}
		return n.Feature
	}
	require.NoError(t, tr.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		topdown = append(topdown, name(n))
		return nil
	}))
	require.NoError(t, tr.Traverse(context.Background(), true, func(_ context.Context, n *Node) error {
		bottomup = append(bottomup, name(n))
		return nil
	}))
	assert.Equal(t, []string{"A", "B", "0", "2", "1"}, topdown)
	assert.Equal(t, []string{"0", "2", "B", "1", "A"}, bottomup)

	stop := errors.New("stop")
	err := tr.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		return stop
	})
	assert.Equal(t, stop, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, tr.Traverse(ctx, false, func(context.Context, *Node) error { return nil }))
}

func TestString(t *testing.T) {
	s := testTree(t).String()
	assert.True(t, strings.HasPrefix(s, "{ A split at 5.000000 }"), s)
	assert.Contains(t, s, "|__A < 5.000000")
	assert.Contains(t, s, "|__A >= 5.000000")
	assert.Contains(t, s, "{ B split at 2.000000 }")
	assert.Contains(t, s, "{ 1 }[ 4 ]")
	var nilTree *Tree
	assert.Equal(t, "<untrained>\n", nilTree.String())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	_, err := s.Load(ctx, "missing")
	assert.Equal(t, ErrTreeNotFound, err)

	tr := testTree(t)
	require.NoError(t, s.Save(ctx, "t1", tr))
	loaded, err := s.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, tr, loaded)

	require.NoError(t, s.Delete(ctx, "t1"))
	_, err = s.Load(ctx, "t1")
	assert.Equal(t, ErrTreeNotFound, err)

	assert.Equal(t, ErrNilTree, s.Save(ctx, "nil", nil))
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.Error(t, s.Save(ctx, "t", testTree(t)))
}
