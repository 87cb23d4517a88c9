/*
Package tree provides the binary decision tree grown by bonsai classifiers,
the traversal that classifies samples with it and stores to keep trees
around.
*/
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/bonsai/feature"
)

// Tree represents a binary decision tree. Trees are not modified once
// grown, so they can be shared by any number of goroutines classifying
// samples.
type Tree struct {
	root *Node
}

// Error represents an error related with trees
type Error string

const (
	// ErrNilTree is returned when operating on a tree without nodes
	ErrNilTree = Error("nil tree cannot classify samples")
	// ErrTreeNotFound is returned by stores when no tree is stored
	// under the requested id
	ErrTreeNotFound = Error("tree not found")
)

func (e Error) Error() string {
	return string(e)
}

// New takes the root Node of a tree and returns the tree or an error
// if the nodes do not form a valid tree.
func New(root *Node) (*Tree, error) {
	if root == nil {
		return nil, ErrNilTree
	}
	if err := root.validate(make(map[string]bool)); err != nil {
		return nil, fmt.Errorf("invalid tree: %v", err)
	}
	return &Tree{root}, nil
}

// Root returns the root node of the tree. Nodes are not copied, so the
// returned graph is the one Classify walks and callers must not modify
// it.
func (t *Tree) Root() *Node {
	return t.root
}

// Classify takes a sample and returns the label the tree predicts
// for it or an error if the prediction could not be made. A sample
// without a value for a feature asked by a traversed node yields a
// *feature.MissingFeatureError.
func (t *Tree) Classify(s feature.Sample) (int, error) {
	if t == nil || t.root == nil {
		return 0, ErrNilTree
	}
	n := t.root
	for {
		switch n.Kind {
		case Leaf:
			return n.Label, nil
		case Decision:
			v, err := s.ValueFor(feature.NewContinuousFeature(n.Feature))
			if err != nil {
				return 0, err
			}
			if v < n.Threshold {
				n = n.Below
			} else {
				n = n.Above
			}
		default:
			return 0, fmt.Errorf("classifying sample: unknown node kind %v", n.Kind)
		}
	}
}

// Depth returns the maximum number of decision nodes found on a path
// from the root to a leaf.
func (t *Tree) Depth() int {
	return depth(t.root)
}

func depth(n *Node) int {
	if n == nil || n.Kind == Leaf {
		return 0
	}
	b, a := depth(n.Below), depth(n.Above)
	if b > a {
		return b + 1
	}
	return a + 1
}

// Count returns the number of decision nodes and leaves of the tree
func (t *Tree) Count() (decisions, leaves int) {
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		if n.Kind == Leaf {
			leaves++
		} else {
			decisions++
		}
		return nil
	})
	return
}

// Features returns the names of the features asked by the decision
// nodes of the tree, in order of first appearance on a pre-order
// traversal.
func (t *Tree) Features() []string {
	var names []string
	seen := make(map[string]bool)
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		if n.Kind == Decision && !seen[n.Feature] {
			seen[n.Feature] = true
			names = append(names, n.Feature)
		}
		return nil
	})
	return names
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Below
// subtrees are traversed before above ones.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
// Otherwise, when the traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	if t == nil || t.root == nil {
		return ErrNilTree
	}
	return traverse(ctx, t.root, bottomup, f)
}

func traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
		if err != nil {
			return err
		}
	}
	if n.Kind == Decision {
		for _, sn := range []*Node{n.Below, n.Above} {
			err = traverse(ctx, sn, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

func (t *Tree) String() string {
	if t == nil || t.root == nil {
		return "<untrained>\n"
	}
	return subtreeString(t.root)
}

func subtreeString(n *Node) string {
	if n.Kind == Leaf {
		return fmt.Sprintf("{ %d }[ %d ]\n", n.Label, n.Weight)
	}
	result := fmt.Sprintf("{ %s split at %f }[ %d ]{ informationGain=%f }\n|\n", n.Feature, n.Threshold, n.Weight, n.Gain)
	children := []struct {
		name string
		node *Node
	}{
		{fmt.Sprintf("%s < %f", n.Feature, n.Threshold), n.Below},
		{fmt.Sprintf("%s >= %f", n.Feature, n.Threshold), n.Above},
	}
	for i, child := range children {
		result = fmt.Sprintf("%s|__%s\n", result, child.name)
		for _, line := range strings.Split(subtreeString(child.node), "\n") {
			if len(line) == 0 {
				continue
			}
			if i == len(children)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
