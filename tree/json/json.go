/*
Package json provides the JSON codec for trees, used to keep them in
stores and files.
*/
package json

import (
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/pbanos/bonsai/tree"
	"github.com/pkg/errors"
)

/*
EncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type EncodeDecoder interface {

	//Encode receives a *tree.Tree
	//and returns a slice of bytes with the tree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Tree) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Tree decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Tree, error)
}

type encodeDecoder struct{}

type node struct {
	Kind      string  `json:"kind"`
	Label     int     `json:"l,omitempty"`
	Weight    int     `json:"w"`
	Feature   string  `json:"f,omitempty"`
	Threshold float64 `json:"t,omitempty"`
	Gain      float64 `json:"g,omitempty"`
	Below     *node   `json:"b,omitempty"`
	Above     *node   `json:"a,omitempty"`
}

// New returns an EncodeDecoder encoding trees as nested JSON objects
func New() EncodeDecoder {
	return encodeDecoder{}
}

func (encodeDecoder) Encode(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root() == nil {
		return nil, tree.ErrNilTree
	}
	jn, err := toJSONNode(t.Root())
	if err != nil {
		return nil, errors.Wrap(err, "encoding tree")
	}
	data, err := json.Marshal(jn)
	if err != nil {
		return nil, errors.Wrap(err, "encoding tree")
	}
	return data, nil
}

func (encodeDecoder) Decode(data []byte) (*tree.Tree, error) {
	jn := &node{}
	if err := json.Unmarshal(data, jn); err != nil {
		return nil, errors.Wrap(err, "decoding tree")
	}
	root, err := fromJSONNode(jn)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tree")
	}
	t, err := tree.New(root)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tree")
	}
	return t, nil
}

/*
WriteJSONTree takes an io.Writer and a tree,
and writes the JSON encoding of the tree to
the writer. It returns an error if the tree
cannot be encoded or written.
*/
func WriteJSONTree(w io.Writer, t *tree.Tree) error {
	data, err := New().Encode(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing tree")
}

/*
ReadJSONTree takes an io.Reader and returns
the tree decoded from its JSON contents or an
error if the contents cannot be read or are not
a valid tree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading tree")
	}
	return New().Decode(data)
}

func toJSONNode(n *tree.Node) (*node, error) {
	if n == nil {
		return nil, errors.New("nil node")
	}
	jn := &node{Kind: n.Kind.String(), Weight: n.Weight}
	switch n.Kind {
	case tree.Leaf:
		jn.Label = n.Label
	case tree.Decision:
		jn.Feature = n.Feature
		jn.Threshold = n.Threshold
		jn.Gain = n.Gain
		var err error
		jn.Below, err = toJSONNode(n.Below)
		if err != nil {
			return nil, err
		}
		jn.Above, err = toJSONNode(n.Above)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unknown node kind %v", n.Kind)
	}
	return jn, nil
}

func fromJSONNode(jn *node) (*tree.Node, error) {
	if jn == nil {
		return nil, errors.New("missing node")
	}
	switch jn.Kind {
	case tree.Leaf.String():
		return tree.NewLeaf(jn.Label, jn.Weight), nil
	case tree.Decision.String():
		below, err := fromJSONNode(jn.Below)
		if err != nil {
			return nil, errors.Wrapf(err, "below %s", jn.Feature)
		}
		above, err := fromJSONNode(jn.Above)
		if err != nil {
			return nil, errors.Wrapf(err, "above %s", jn.Feature)
		}
		return tree.NewDecision(jn.Feature, jn.Threshold, jn.Gain, jn.Weight, below, above), nil
	}
	return nil, errors.Errorf("unknown node kind %q", jn.Kind)
}
