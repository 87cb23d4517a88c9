package tree

import "fmt"

// Kind tells the variant of a Node
type Kind int

const (
	// Leaf nodes end the traversal of a tree with a label
	Leaf Kind = iota
	// Decision nodes send samples below or above them
	// depending on their value for a feature
	Decision
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Decision:
		return "decision"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Node is a node of the tree
*/
type Node struct {
	// Whether the node is a leaf or a decision
	Kind Kind
	// The label predicted for samples reaching a Leaf node
	Label int
	// The number of training samples that reached the node
	Weight int
	// The name of the feature a Decision node asks about
	Feature string
	// The value splitting samples of a Decision node: those with a
	// feature value strictly less than it go Below, the rest Above
	Threshold float64
	// The information gain obtained by the split of a Decision node
	Gain float64
	// Subtrees of a Decision node
	Below *Node
	Above *Node
}

// NewLeaf returns a Leaf node with the given label and weight
func NewLeaf(label, weight int) *Node {
	return &Node{Kind: Leaf, Label: label, Weight: weight}
}

// NewDecision returns a Decision node on the given feature and threshold
// with the given subtrees
func NewDecision(feature string, threshold, gain float64, weight int, below, above *Node) *Node {
	return &Node{
		Kind:      Decision,
		Feature:   feature,
		Threshold: threshold,
		Gain:      gain,
		Weight:    weight,
		Below:     below,
		Above:     above,
	}
}

// IsLeaf returns whether the node is a Leaf
func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

// validate checks the node and its subtrees are well formed:
// decision nodes must have a feature and both subtrees, and
// no feature may be repeated along a path from the root.
func (n *Node) validate(path map[string]bool) error {
	if n == nil {
		return fmt.Errorf("nil node")
	}
	switch n.Kind {
	case Leaf:
		if n.Below != nil || n.Above != nil {
			return fmt.Errorf("leaf node with subtrees")
		}
		return nil
	case Decision:
		if n.Feature == "" {
			return fmt.Errorf("decision node without feature")
		}
		if path[n.Feature] {
			return fmt.Errorf("feature %s repeated on path", n.Feature)
		}
		if n.Below == nil || n.Above == nil {
			return fmt.Errorf("decision node on %s missing a subtree", n.Feature)
		}
		path[n.Feature] = true
		defer delete(path, n.Feature)
		if err := n.Below.validate(path); err != nil {
			return err
		}
		return n.Above.validate(path)
	}
	return fmt.Errorf("unknown node kind %v", n.Kind)
}
